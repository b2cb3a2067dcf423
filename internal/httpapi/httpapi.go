// Package httpapi exposes the relay over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ViniAguiar1/llm-agent-runtime/internal/relay"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/llm"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/request"
)

// MaxBodyBytes caps the size of a /run body.
const MaxBodyBytes = 1 << 20

// Handler serves the relay HTTP API.
type Handler struct {
	relay  *relay.Service
	log    zerolog.Logger
	router chi.Router
}

// New creates a Handler for svc.
func New(svc *relay.Service, log zerolog.Logger) *Handler {
	h := &Handler{relay: svc, log: log}
	h.router = h.buildRouter()
	return h
}

// Router returns the HTTP handler.
func (h *Handler) Router() http.Handler { return h.router }

func (h *Handler) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(h.log))
	r.Use(recoverer(h.log))

	r.With(middleware.RequestSize(MaxBodyBytes)).Post("/run", h.handleRun)
	r.Get("/health", h.handleHealth)

	return r
}

// --- Request/Response types ---

type invalidPayloadResponse struct {
	Error   string                   `json:"error"`
	Details *request.ValidationError `json:"details"`
}

type upstreamFailureResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- Handlers ---

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	rid := RequestIDFrom(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		msg := "could not read request body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "request body too large"
		}
		h.writeInvalid(w, rid, &request.ValidationError{
			FormErrors:  []string{msg},
			FieldErrors: map[string][]string{},
		})
		return
	}

	req, err := request.Parse(body)
	if err != nil {
		var verr *request.ValidationError
		if !errors.As(err, &verr) {
			h.log.Error().Str("rid", rid).Err(err).Msg("parsing request")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		h.writeInvalid(w, rid, verr)
		return
	}

	res, err := h.relay.Run(r.Context(), req)
	if err != nil {
		ev := h.log.Error().Str("rid", rid).Err(err)
		var upErr *llm.UpstreamError
		if errors.As(err, &upErr) {
			ev = ev.Int("upstream_status", upErr.StatusCode)
		}
		ev.Msg("upstream call failed")
		writeJSON(w, http.StatusInternalServerError, upstreamFailureResponse{
			Error:   "failed to call OpenAI",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *Handler) writeInvalid(w http.ResponseWriter, rid string, verr *request.ValidationError) {
	h.log.Warn().Str("rid", rid).Strs("fields", verr.Fields()).Strs("form", verr.FormErrors).Msg("invalid payload")
	writeJSON(w, http.StatusBadRequest, invalidPayloadResponse{
		Error:   "invalid payload",
		Details: verr,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
