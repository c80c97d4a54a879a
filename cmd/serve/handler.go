package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spetersoncode/imago"
	"github.com/spetersoncode/imago/build"
	"github.com/spetersoncode/imago/catalog"
)

// dispatcher is the slice of the client the handler needs; tests substitute
// a stub to assert that invalid input never reaches an adapter.
type dispatcher interface {
	Dispatch(ctx context.Context, req imago.Request) (*imago.Result, error)
}

// GenerateHandler handles POST /api/generate/{provider}.
type GenerateHandler struct {
	client  dispatcher
	timeout time.Duration
}

// NewGenerateHandler creates a handler dispatching through c, bounding each
// upstream call by timeout.
func NewGenerateHandler(c dispatcher, timeout time.Duration) *GenerateHandler {
	return &GenerateHandler{client: c, timeout: timeout}
}

// errorBody is the uniform failure envelope.
type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ServeHTTP validates the request body against the provider's rules and
// dispatches it. Validation failures respond 400 before any upstream call;
// missing provider configuration responds 500 before any upstream call.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("provider")
	log := slog.With("provider", providerID)

	var fields build.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Warn("invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return
	}

	req, err := build.Build(providerID, fields)
	if err != nil {
		log.Warn("validation failed", "error", err)
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	result, err := h.client.Dispatch(ctx, req)
	if err != nil {
		switch imago.KindOf(err) {
		case imago.KindFormat:
			// Upstream said success but sent a shape the normalizer
			// cannot use; logged apart from real upstream failures.
			log.Error("uninterpretable upstream response", "error", err)
		case imago.KindConfiguration:
			log.Error("provider not configured", "error", err)
		default:
			log.Error("generation failed", "error", err, "status", imago.HTTPStatus(err))
		}
		writeError(w, err)
		return
	}

	log.Info("generation succeeded",
		"images", len(result.Images),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	writeJSON(w, http.StatusOK, result)
}

// ProvidersHandler handles GET /api/providers, serving the catalog so UIs
// can populate their selectors.
func ProvidersHandler(w http.ResponseWriter, r *http.Request) {
	type modelJSON struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	type providerJSON struct {
		ID     string      `json:"id"`
		Name   string      `json:"name"`
		Models []modelJSON `json:"models"`
	}

	providers := catalog.Providers()
	out := make([]providerJSON, len(providers))
	for i, p := range providers {
		models := make([]modelJSON, len(p.Models))
		for j, m := range p.Models {
			models[j] = modelJSON{ID: m.ID, Name: m.Name}
		}
		out[i] = providerJSON{ID: p.ID, Name: p.Name, Models: models}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}
	var upstream *imago.UpstreamError
	if errors.As(err, &upstream) && upstream.RawDetails != nil {
		body.Details = upstream.RawDetails
	}
	writeJSON(w, imago.HTTPStatus(err), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
