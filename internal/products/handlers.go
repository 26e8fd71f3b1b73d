package products

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgNotFound    = "No product found"
	msgNoData      = "No data"
	msgRemoved     = "Product removed"
	msgInvalidJSON = "Invalid JSON"
)

// Request is what an operation needs from the transport: the path id and
// the decoded body. Body is nil when the client sent none.
type Request struct {
	ID   string
	Body *Payload
}

// Response is a status code plus a JSON-serializable body.
type Response struct {
	Status int
	Body   any
}

type DataBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type MessageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MsgBody is the not-found shape of update. Existing clients read the
// "msg" key there, unlike every other error which uses "message".
type MsgBody struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

type Server struct {
	Store Store
	Log   *zap.Logger

	// NewID generates ids for created products. Defaults to UUID v4.
	NewID func() string
	// MaxBodyBytes caps request bodies. Zero means defaultMaxBody.
	MaxBodyBytes int64
}

func (s *Server) ListProducts(Request) Response {
	return Response{
		Status: http.StatusOK,
		Body:   DataBody{Success: true, Data: s.Store.List()},
	}
}

func (s *Server) GetProduct(req Request) Response {
	p, ok := s.Store.Get(req.ID)
	if !ok {
		s.logger().Debug("product not found", zap.String("id", req.ID))
		return Response{
			Status: http.StatusNotFound,
			Body:   MessageBody{Success: false, Message: msgNotFound},
		}
	}
	return Response{
		Status: http.StatusOK,
		Body:   DataBody{Success: true, Data: p},
	}
}

func (s *Server) CreateProduct(req Request) Response {
	if req.Body == nil {
		return Response{
			Status: http.StatusBadRequest,
			Body:   MessageBody{Success: false, Message: msgNoData},
		}
	}

	p := req.Body.Apply(Product{ID: s.newID()})
	s.Store.Append(p)

	s.logger().Info("product created", zap.String("id", p.ID), zap.String("name", p.Name))
	return Response{
		Status: http.StatusCreated,
		Body:   DataBody{Success: true, Data: p},
	}
}

func (s *Server) UpdateProduct(req Request) Response {
	var pl Payload
	if req.Body != nil {
		pl = *req.Body
	}

	all, ok := s.Store.Update(req.ID, pl)
	if !ok {
		s.logger().Debug("product not found for update", zap.String("id", req.ID))
		return Response{
			Status: http.StatusNotFound,
			Body:   MsgBody{Success: false, Msg: msgNotFound},
		}
	}

	s.logger().Info("product updated", zap.String("id", req.ID))
	return Response{
		Status: http.StatusOK,
		Body:   DataBody{Success: true, Data: all},
	}
}

// DeleteProduct succeeds whether or not anything matched.
func (s *Server) DeleteProduct(req Request) Response {
	n := s.Store.Delete(req.ID)

	s.logger().Info("product removed", zap.String("id", req.ID), zap.Int("removed", n))
	return Response{
		Status: http.StatusOK,
		Body:   MessageBody{Success: true, Message: msgRemoved},
	}
}

func (s *Server) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Server) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
