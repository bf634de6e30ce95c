package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEmbedder_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embed", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "MKVLA", req.Sequence)

		rows := [][]float32{{0, 1}, {1, 2}, {2, 3}}
		_ = json.NewEncoder(w).Encode(Embedding{Shallow: rows, Deep: rows})
	}))
	defer srv.Close()

	h := NewHTTPEmbedder(HTTPConfig{BaseURL: srv.URL + "/", Token: "secret"})
	e, err := h.Embed(context.Background(), "MKVLA")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Residues())
	assert.Equal(t, []float32{1, 2}, e.Deep[1])
}

func TestHTTPEmbedder_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	h := NewHTTPEmbedder(HTTPConfig{BaseURL: srv.URL})
	_, err := h.Embed(context.Background(), "MKVLA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPEmbedder_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"shallow":[],"deep":[]}`))
	}))
	defer srv.Close()

	h := NewHTTPEmbedder(HTTPConfig{BaseURL: srv.URL})
	_, err := h.Embed(context.Background(), "MKVLA")
	require.ErrorIs(t, err, ErrEmptyEmbedding)
}
