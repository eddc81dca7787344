// Package auth implements passwordless authentication: an NPI lookup
// against the identity registry, a one-time passcode delivered by
// email, and a signed bearer token on successful verification.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/internal/auth/passcode"
	"github.com/efoncier/survey-lab/internal/auth/token"
	"github.com/efoncier/survey-lab/internal/mailer"
	"github.com/efoncier/survey-lab/internal/registry"
	"github.com/efoncier/survey-lab/internal/users"
)

// Challenge describes an issued passcode without revealing the full
// delivery address.
type Challenge struct {
	MaskedEmail string `json:"email"`
	ExpiresIn   string `json:"expires_in"`
}

// Session is the result of a successful verification.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	UserID      uuid.UUID `json:"user_id"`
}

// System implements the two-step authentication flow.
type System interface {
	// RequestOTP resolves the NPI, checks the supplied email against
	// the registry record, issues a passcode, and delivers it to the
	// registered address.
	RequestOTP(ctx context.Context, npi, email string) (*Challenge, error)

	// VerifyOTP consumes the passcode, provisions the account, and
	// returns a bearer session.
	VerifyOTP(ctx context.Context, npi, otp string) (*Session, error)
}

type system struct {
	config    *Config
	registry  registry.Registry
	users     users.System
	mailer    mailer.Mailer
	passcodes passcode.Store
	tokens    *token.Issuer
	logger    *slog.Logger
}

// NewSystem assembles the authentication flow from its collaborators.
func NewSystem(
	config *Config,
	reg registry.Registry,
	usr users.System,
	mail mailer.Mailer,
	store passcode.Store,
	issuer *token.Issuer,
	logger *slog.Logger,
) System {
	return &system{
		config:    config,
		registry:  reg,
		users:     usr,
		mailer:    mail,
		passcodes: store,
		tokens:    issuer,
		logger:    logger.With("system", "auth"),
	}
}

func (s *system) RequestOTP(ctx context.Context, npi, email string) (*Challenge, error) {
	person, err := s.registry.Lookup(ctx, npi)
	if err != nil {
		return nil, err
	}

	if person.Email == "" || !strings.EqualFold(person.Email, email) {
		return nil, ErrEmailMismatch
	}

	code, err := passcode.Generate(s.config.OTPLength)
	if err != nil {
		return nil, err
	}

	if err := s.passcodes.Put(ctx, npi, code); err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour verification code is %s. It expires in %s.\n\nIf you did not request this code, ignore this message.",
		person.FirstName, code, s.config.Passcode.TTL,
	)
	if err := s.mailer.Send(ctx, person.Email, "Your verification code", body); err != nil {
		// An undeliverable passcode must not stay verifiable.
		if delErr := s.passcodes.Delete(ctx, npi); delErr != nil {
			s.logger.Warn("passcode cleanup failed", "npi", npi, "error", delErr)
		}
		return nil, fmt.Errorf("deliver passcode: %w", err)
	}

	s.logger.Info("passcode issued", "npi", npi)
	return &Challenge{
		MaskedEmail: maskEmail(person.Email),
		ExpiresIn:   s.config.Passcode.TTL,
	}, nil
}

func (s *system) VerifyOTP(ctx context.Context, npi, otp string) (*Session, error) {
	if err := registry.ValidateNPI(npi); err != nil {
		return nil, err
	}

	if err := s.passcodes.Verify(ctx, npi, otp); err != nil {
		return nil, err
	}

	person, err := s.registry.Lookup(ctx, npi)
	if err != nil {
		return nil, err
	}

	user, err := s.users.EnsureFromPerson(ctx, person)
	if err != nil {
		return nil, err
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("session issued", "user_id", user.ID, "npi", npi)
	return &Session{AccessToken: signed, TokenType: "bearer", UserID: user.ID}, nil
}

// maskEmail hides the local part except its first character.
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 1 {
		return email
	}
	return email[:1] + strings.Repeat("*", at-1) + email[at:]
}
