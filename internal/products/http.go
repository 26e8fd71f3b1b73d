package products

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rafael-uchoa/products-api/pkg/kit"
)

const (
	APIPrefix = "/api/v1/products"

	defaultMaxBody = 1 << 20
	readyTimeout   = 1 * time.Second
)

type operation func(Request) Response

// Routes mounts the product resource on r, relative to APIPrefix.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.serve(s.ListProducts, false))
	r.Post("/", s.serve(s.CreateProduct, true))

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", s.serve(s.GetProduct, false))
		r.Put("/", s.serve(s.UpdateProduct, true))
		r.Delete("/", s.serve(s.DeleteProduct, false))
	})
}

func (s *Server) serve(op operation, withBody bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := Request{ID: chi.URLParam(r, "id")}

		if withBody {
			body, err := s.decodeBody(w, r)
			if err != nil {
				s.logger().Debug("decode body failed", zap.Error(err))
				kit.WriteJSON(w, http.StatusBadRequest, MessageBody{Success: false, Message: msgInvalidJSON})
				return
			}
			req.Body = body
		}

		resp := op(req)
		kit.WriteJSON(w, resp.Status, resp.Body)
	}
}

// decodeBody returns nil for an empty body or a JSON null.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request) (*Payload, error) {
	if r.Body == nil {
		return nil, nil
	}

	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	defer func() { _ = r.Body.Close() }()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var pl *Payload
	if err := json.Unmarshal(raw, &pl); err != nil {
		return nil, err
	}
	return pl, nil
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
