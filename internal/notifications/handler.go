package notifications

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/internal/auth/token"
	"github.com/efoncier/survey-lab/pkg/handlers"
	"github.com/efoncier/survey-lab/pkg/routes"
)

// Handler provides HTTP endpoints for notification management.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a notification handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "notifications"),
	}
}

// Routes returns the notification route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/notifications",
		Description: "processing outcome notifications",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: h.List},
			{Method: http.MethodPost, Pattern: "/{id}/read", Handler: h.MarkRead},
			{Method: http.MethodDelete, Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	result, err := h.sys.List(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if result == nil {
		result = []*Notification{}
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"notifications": result})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.MarkRead(r.Context(), userID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), userID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
