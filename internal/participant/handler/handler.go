// Package handler exposes the participant API over HTTP. Handlers stay
// thin: decode, delegate to the service, filter visibility, encode. Every
// read response passes through the visibility filter immediately before
// serialization; persisted data is never mutated by filtering.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"orgregistry/internal/participant/models"
	"orgregistry/internal/participant/service"
	"orgregistry/internal/platform/middleware"
	dErrors "orgregistry/pkg/domain-errors"
)

// Handler serves participant endpoints.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

// New constructs a Handler.
func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the participant routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/organization", h.handleList)
	r.Get("/organization/federators", h.handleFederators)
	r.Get("/organization/{orgID}", h.handleGet)
	r.Post("/organization", h.handleCreate)
	r.Put("/organization/{orgID}", h.handleUpdate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetActiveRole(r.Context())
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 25)

	result, err := h.svc.ListPage(r.Context(), role, page, size)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, service.FilterPage(role, result))
}

func (h *Handler) handleFederators(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetActiveRole(r.Context())
	federators, err := h.svc.ListFederators(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, service.FilterParticipants(role, federators))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetActiveRole(r.Context())
	participant, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, service.FilterParticipant(role, participant))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var form models.RegistrationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "malformed registration form"))
		return
	}

	participant, err := h.svc.Create(r.Context(), &form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	// The registering caller sees the full participant it just created.
	h.writeJSON(w, http.StatusCreated, participant)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetActiveRole(r.Context())

	var edited models.Participant
	if err := json.NewDecoder(r.Body).Decode(&edited); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "malformed participant"))
		return
	}

	updated, err := h.svc.Update(r.Context(), role, chi.URLParam(r, "orgID"), &edited)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, service.FilterParticipant(role, updated))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   string(code),
		"message": dErrors.MessageOf(err),
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
