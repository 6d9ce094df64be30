// Package handler exposes connector management over HTTP. All routes act
// on the caller's own organization, resolved from the active role; there is
// no cross-organization connector surface.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orgregistry/internal/connector/models"
	"orgregistry/internal/connector/service"
	"orgregistry/internal/platform/middleware"
	dErrors "orgregistry/pkg/domain-errors"
)

// Handler serves connector endpoints.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

// New constructs a Handler.
func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the connector routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/connectors", h.handleList)
	r.Post("/connectors", h.handleSave)
	r.Get("/connectors/{connectorID}", h.handleGet)
	r.Delete("/connectors/{connectorID}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetActiveRole(r.Context())
	records, err := h.svc.ListOwn(r.Context(), role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []models.ConnectorRecord{}
	}
	h.writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetActiveRole(r.Context())
	record, err := h.svc.GetOwn(r.Context(), role, chi.URLParam(r, "connectorID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetActiveRole(r.Context())

	var record models.ConnectorRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "malformed connector record"))
		return
	}

	saved, err := h.svc.SaveOwn(r.Context(), role, &record)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetActiveRole(r.Context())
	if err := h.svc.DeleteOwn(r.Context(), role, chi.URLParam(r, "connectorID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
