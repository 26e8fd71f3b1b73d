// Package config loads the service configuration from defaults, an optional
// YAML file, an optional .env file and PRODUCTS_* environment variables, in
// increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "PRODUCTS_"

type Config struct {
	Service   string          `koanf:"service" validate:"required"`
	HTTP      HTTPConfig      `koanf:"http"`
	Log       LogConfig       `koanf:"log"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

type HTTPConfig struct {
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	ReadHeaderTimeout time.Duration `koanf:"readheadertimeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdowntimeout" validate:"gt=0"`
	MaxBodyBytes      int64         `koanf:"maxbodybytes" validate:"gt=0"`
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Token   string `koanf:"token"`
}

type RateLimitConfig struct {
	Enabled bool          `koanf:"enabled"`
	Limit   int           `koanf:"limit" validate:"required_if=Enabled true,gte=0"`
	Window  time.Duration `koanf:"window" validate:"required_if=Enabled true,gte=0"`
}

func defaults() map[string]any {
	return map[string]any{
		"service":                "products",
		"http.port":              8000,
		"http.readheadertimeout": 5 * time.Second,
		"http.shutdowntimeout":   10 * time.Second,
		"http.maxbodybytes":      int64(1 << 20),
		"log.level":              "info",
		"metrics.enabled":        true,
		"metrics.token":          "",
		"ratelimit.enabled":      false,
		"ratelimit.limit":        100,
		"ratelimit.window":       time.Minute,
	}
}

// Options selects the files Load reads. Empty paths skip that source.
type Options struct {
	ConfigFile string
	EnvFile    string
	// Environ overrides the process environment; nil reads os.Environ.
	Environ []string
}

func Load(opts Options) (Config, error) {
	var cfg Config
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return cfg, fmt.Errorf("load defaults: %w", err)
	}

	if opts.ConfigFile != "" {
		if err := k.Load(file.Provider(opts.ConfigFile), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load config file %q: %w", opts.ConfigFile, err)
		}
	}

	if opts.EnvFile != "" {
		envMap, err := godotenv.Read(opts.EnvFile)
		switch {
		case err == nil:
			if err := k.Load(confmap.Provider(prefixed(envMap), "."), nil); err != nil {
				return cfg, fmt.Errorf("load env file %q: %w", opts.EnvFile, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return cfg, fmt.Errorf("read env file %q: %w", opts.EnvFile, err)
		}
	}

	var envProvider koanf.Provider = env.Provider(EnvPrefix, ".", envKey)
	if opts.Environ != nil {
		envProvider = confmap.Provider(prefixed(environMap(opts.Environ)), ".")
	}
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// envKey maps PRODUCTS_HTTP_PORT to http.port.
// Keys are lowercase single words per level, so PRODUCTS_HTTP_MAXBODYBYTES
// reaches http.maxbodybytes.
func envKey(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", ".")
}

func prefixed(vars map[string]string) map[string]any {
	out := make(map[string]any, len(vars))
	for k, v := range vars {
		if !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		out[envKey(k)] = v
	}
	return out
}

func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			out[k] = v
		}
	}
	return out
}
