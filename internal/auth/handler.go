package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/efoncier/survey-lab/pkg/handlers"
	"github.com/efoncier/survey-lab/pkg/routes"
)

// Handler exposes authentication endpoints.
type Handler struct {
	auth   System
	logger *slog.Logger
}

// NewHandler creates an authentication handler.
func NewHandler(auth System, logger *slog.Logger) *Handler {
	return &Handler{
		auth:   auth,
		logger: logger.With("handler", "auth"),
	}
}

// Routes returns the authentication route group. These routes are
// public: they establish the session the rest of the API requires.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/auth",
		Description: "passwordless authentication",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/request-otp", Handler: h.RequestOTP},
			{Method: http.MethodPost, Pattern: "/verify-otp", Handler: h.VerifyOTP},
		},
	}
}

type requestOTPRequest struct {
	NPI   string `json:"npi"`
	Email string `json:"email"`
}

func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	challenge, err := h.auth.RequestOTP(r.Context(), req.NPI, req.Email)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"message":    "verification code sent",
		"email":      challenge.MaskedEmail,
		"expires_in": challenge.ExpiresIn,
	})
}

type verifyOTPRequest struct {
	NPI string `json:"npi"`
	OTP string `json:"otp"`
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	session, err := h.auth.VerifyOTP(r.Context(), req.NPI, req.OTP)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}
