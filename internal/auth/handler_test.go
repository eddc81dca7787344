package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/internal/auth"
)

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func requestCode(t *testing.T, handler *auth.Handler, mail *captureMailer) string {
	t.Helper()
	rec := postJSON(t, handler.RequestOTP, `{"npi":"`+testNPI+`","email":"`+testEmail+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("request-otp status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
	return mail.code(t)
}

func TestHandler_VerifyOTP_ResponseShape(t *testing.T) {
	sys, mail, usr, _ := newSystem(t)
	handler := auth.NewHandler(sys, discard())

	code := requestCode(t, handler, mail)

	rec := postJSON(t, handler.VerifyOTP, `{"npi":"`+testNPI+`","otp":"`+code+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify-otp status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	var accessToken, tokenType string
	var userID uuid.UUID
	if err := json.Unmarshal(payload["access_token"], &accessToken); err != nil || accessToken == "" {
		t.Errorf("access_token = %s, want signed token", payload["access_token"])
	}
	if err := json.Unmarshal(payload["token_type"], &tokenType); err != nil || tokenType != "bearer" {
		t.Errorf("token_type = %s, want %q", payload["token_type"], "bearer")
	}
	if err := json.Unmarshal(payload["user_id"], &userID); err != nil || userID != usr.userID {
		t.Errorf("user_id = %s, want %s", payload["user_id"], usr.userID)
	}
}

func TestHandler_RequestOTP_ResponseShape(t *testing.T) {
	sys, _, _, _ := newSystem(t)
	handler := auth.NewHandler(sys, discard())

	rec := postJSON(t, handler.RequestOTP, `{"npi":"`+testNPI+`","email":"`+testEmail+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("request-otp status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var payload struct {
		Message   string `json:"message"`
		Email     string `json:"email"`
		ExpiresIn string `json:"expires_in"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Message == "" || payload.Email == "" || payload.ExpiresIn == "" {
		t.Errorf("incomplete challenge payload: %s", rec.Body)
	}
}

func TestHandler_RequestOTP_EmailMismatch(t *testing.T) {
	sys, _, _, _ := newSystem(t)
	handler := auth.NewHandler(sys, discard())

	rec := postJSON(t, handler.RequestOTP, `{"npi":"`+testNPI+`","email":"intruder@example.bj"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
