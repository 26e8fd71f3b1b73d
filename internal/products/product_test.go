package products

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_DecodeTracksPresence(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want Payload
	}{
		{name: "empty object", raw: `{}`, want: Payload{}},
		{name: "price only", raw: `{"price":99}`, want: Payload{Price: ptr(99.0)}},
		{name: "explicit zero values", raw: `{"name":"","price":0}`, want: Payload{Name: ptr(""), Price: ptr(0.0)}},
		{name: "id and unknown keys dropped", raw: `{"id":"7","sku":"x","description":"d"}`, want: Payload{Description: ptr("d")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got Payload
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPayload_Apply(t *testing.T) {
	base := Product{ID: "1", Name: "n", Description: "d", Price: 1}

	got := Payload{Price: ptr(2.0)}.Apply(base)

	assert.Equal(t, Product{ID: "1", Name: "n", Description: "d", Price: 2}, got)
}
