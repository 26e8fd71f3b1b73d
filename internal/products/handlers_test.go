package products

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer() *Server {
	n := 0
	return &Server{
		Store: NewStore(),
		Log:   zap.NewNop(),
		NewID: func() string {
			n++
			return fmt.Sprintf("gen-%d", n)
		},
	}
}

func TestServer_ListProducts(t *testing.T) {
	s := newTestServer()

	resp := s.ListProducts(Request{})

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, DataBody{Success: true, Data: SeedProducts()}, resp.Body)
}

func TestServer_GetProduct(t *testing.T) {
	testCases := []struct {
		name       string
		id         string
		wantStatus int
		wantBody   any
	}{
		{
			name:       "seed record",
			id:         "2",
			wantStatus: http.StatusOK,
			wantBody:   DataBody{Success: true, Data: SeedProducts()[1]},
		},
		{
			name:       "missing",
			id:         "nonexistent",
			wantStatus: http.StatusNotFound,
			wantBody:   MessageBody{Success: false, Message: "No product found"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := newTestServer().GetProduct(Request{ID: tc.id})

			assert.Equal(t, tc.wantStatus, resp.Status)
			assert.Equal(t, tc.wantBody, resp.Body)
		})
	}
}

func TestServer_CreateProduct(t *testing.T) {
	s := newTestServer()

	resp := s.CreateProduct(Request{ID: "ignored", Body: &Payload{Name: ptr("X"), Description: ptr("Y"), Price: ptr(10.0)}})

	require.Equal(t, http.StatusCreated, resp.Status)
	want := Product{ID: "gen-1", Name: "X", Description: "Y", Price: 10}
	assert.Equal(t, DataBody{Success: true, Data: want}, resp.Body)

	got, ok := s.Store.Get("gen-1")
	require.True(t, ok)
	assert.Equal(t, want, got)

	all := s.Store.List()
	require.Len(t, all, 4)
	assert.Equal(t, want, all[3])
}

func TestServer_CreateProduct_NoBody(t *testing.T) {
	s := newTestServer()

	resp := s.CreateProduct(Request{})

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, MessageBody{Success: false, Message: "No data"}, resp.Body)
	assert.Equal(t, 3, s.Store.Len())
}

func TestServer_CreateProduct_DefaultIDIsUUID(t *testing.T) {
	s := &Server{Store: NewStore()}

	a := s.CreateProduct(Request{Body: &Payload{}}).Body.(DataBody).Data.(Product)
	b := s.CreateProduct(Request{Body: &Payload{}}).Body.(DataBody).Data.(Product)

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
	for _, seed := range SeedProducts() {
		assert.NotEqual(t, seed.ID, a.ID)
	}
}

func TestServer_UpdateProduct(t *testing.T) {
	s := newTestServer()

	resp := s.UpdateProduct(Request{ID: "1", Body: &Payload{Price: ptr(99.0)}})

	require.Equal(t, http.StatusOK, resp.Status)
	body, ok := resp.Body.(DataBody)
	require.True(t, ok)
	assert.True(t, body.Success)

	all, ok := body.Data.([]Product)
	require.True(t, ok)
	require.Len(t, all, 3)
	assert.Equal(t, Product{ID: "1", Name: "Product One", Description: "This is product one", Price: 99}, all[0])
	assert.Equal(t, SeedProducts()[1:], all[1:])
}

func TestServer_UpdateProduct_NilBodyKeepsRecord(t *testing.T) {
	s := newTestServer()

	resp := s.UpdateProduct(Request{ID: "3"})

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, DataBody{Success: true, Data: SeedProducts()}, resp.Body)
}

func TestServer_UpdateProduct_NotFoundUsesMsg(t *testing.T) {
	s := newTestServer()

	resp := s.UpdateProduct(Request{ID: "nonexistent", Body: &Payload{Name: ptr("n")}})

	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, MsgBody{Success: false, Msg: "No product found"}, resp.Body)
}

func TestServer_DeleteProduct_Idempotent(t *testing.T) {
	s := newTestServer()
	want := Response{Status: http.StatusOK, Body: MessageBody{Success: true, Message: "Product removed"}}

	assert.Equal(t, want, s.DeleteProduct(Request{ID: "2"}))
	assert.Equal(t, want, s.DeleteProduct(Request{ID: "2"}))
	assert.Equal(t, want, s.DeleteProduct(Request{ID: "never-existed"}))

	_, ok := s.Store.Get("2")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Store.Len())
}
