package token_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/internal/auth/token"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	userID := uuid.New()

	signed, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	got, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}

	if got != userID {
		t.Errorf("Verify() = %s, want %s", got, userID)
	}
}

func TestIssuer_Verify_Expired(t *testing.T) {
	issuer := token.NewIssuer("test-secret", -time.Minute)

	signed, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	_, err = issuer.Verify(signed)
	if !errors.Is(err, token.ErrTokenExpired) {
		t.Errorf("Verify() = %v, want ErrTokenExpired", err)
	}
}

func TestIssuer_Verify_WrongSecret(t *testing.T) {
	signed, err := token.NewIssuer("secret-a", time.Hour).Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	_, err = token.NewIssuer("secret-b", time.Hour).Verify(signed)
	if !errors.Is(err, token.ErrTokenInvalid) {
		t.Errorf("Verify() = %v, want ErrTokenInvalid", err)
	}
}

func TestIssuer_Verify_Garbage(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("not-a-token")
	if !errors.Is(err, token.ErrTokenInvalid) {
		t.Errorf("Verify() = %v, want ErrTokenInvalid", err)
	}
}

func TestUserID_RoundTrip(t *testing.T) {
	userID := uuid.New()
	ctx := token.WithUserID(context.Background(), userID)

	got, ok := token.UserID(ctx)
	if !ok {
		t.Fatal("UserID() not found on context")
	}
	if got != userID {
		t.Errorf("UserID() = %s, want %s", got, userID)
	}

	if _, ok := token.UserID(context.Background()); ok {
		t.Error("UserID() found on empty context")
	}
}

func TestRequireAuth(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	userID := uuid.New()

	signed, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	var seen uuid.UUID
	handler := token.RequireAuth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = token.UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + signed, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"missing bearer prefix", signed, http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	if seen != userID {
		t.Errorf("handler saw user %s, want %s", seen, userID)
	}
}
