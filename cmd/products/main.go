package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rafael-uchoa/products-api/internal/config"
	"github.com/rafael-uchoa/products-api/internal/products"
	"github.com/rafael-uchoa/products-api/pkg/kit"
)

const (
	exitServer = 1
	exitSetup  = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run returns the process exit code. It returns instead of exiting so the
// deferred logger flush always happens.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	flags := pflag.NewFlagSet("products", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configFile := flags.String("config", "config.yaml", "YAML config file")
	envFile := flags.String("env-file", ".env", "dotenv file with PRODUCTS_* overrides")
	if err := flags.Parse(args); err != nil {
		return exitSetup
	}

	cfg, err := config.Load(config.Options{ConfigFile: *configFile, EnvFile: *envFile})
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitSetup
	}

	log, err := kit.NewLogger(cfg.Service, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "failed to build logger: %v\n", err)
		return exitSetup
	}
	defer func() { _ = log.Sync() }()

	s := &products.Server{
		Store:        products.NewStore(),
		Log:          log,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	}

	deps := products.HTTPDeps{
		Log:            log,
		Service:        cfg.Service,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Registry = reg
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimiter = kit.NewIPRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	h := products.NewHandler(s, deps)

	srvCfg := kit.ServerConfig{
		Addr:              cfg.HTTP.Addr(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
	}
	if err := kit.RunHTTPServer(ctx, srvCfg, h, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return exitServer
	}
	return 0
}
