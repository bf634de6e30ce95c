package embed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/prost/codec"
)

// HTTPConfig holds the configuration of a remote embedding endpoint.
type HTTPConfig struct {
	BaseURL string        // e.g. http://localhost:8000
	Token   string        // Bearer token (empty = no auth)
	Timeout time.Duration // per request; 0 means no client-side timeout
}

// HTTPEmbedder calls an external embedding service.
//
// Request:  POST {BaseURL}/embed  {"sequence": "MKV..."}
// Response: {"shallow": [[...], ...], "deep": [[...], ...]}
type HTTPEmbedder struct {
	cfg        HTTPConfig
	codec      codec.Codec
	httpClient *http.Client
}

// NewHTTPEmbedder creates an embedder for the given endpoint.
func NewHTTPEmbedder(cfg HTTPConfig) *HTTPEmbedder {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPEmbedder{
		cfg:        cfg,
		codec:      codec.Default,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type embedRequest struct {
	Sequence string `json:"sequence"`
}

// Embed implements Embedder.
func (h *HTTPEmbedder) Embed(ctx context.Context, seq string) (Embedding, error) {
	payload, err := h.codec.Marshal(embedRequest{Sequence: seq})
	if err != nil {
		return Embedding{}, fmt.Errorf("embed: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.BaseURL+"/embed", bytes.NewReader(payload))
	if err != nil {
		return Embedding{}, fmt.Errorf("embed: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.cfg.Token)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return Embedding{}, fmt.Errorf("embed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Embedding{}, fmt.Errorf("embed: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Embedding{}, fmt.Errorf("embed: service error (%d): %s", resp.StatusCode, string(body))
	}

	var e Embedding
	if err := h.codec.Unmarshal(body, &e); err != nil {
		return Embedding{}, fmt.Errorf("embed: decode response: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Embedding{}, err
	}
	return e, nil
}
