package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/efoncier/survey-lab/internal/auth/token"
	"github.com/efoncier/survey-lab/pkg/handlers"
	"github.com/efoncier/survey-lab/pkg/routes"
)

// Handler exposes user account endpoints.
type Handler struct {
	users  System
	logger *slog.Logger
}

// NewHandler creates a user handler.
func NewHandler(users System, logger *slog.Logger) *Handler {
	return &Handler{
		users:  users,
		logger: logger.With("handler", "users"),
	}
}

// Routes returns the user route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/users",
		Description: "user accounts",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/me", Handler: h.me},
		},
	}
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	user, err := h.users.Find(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}
