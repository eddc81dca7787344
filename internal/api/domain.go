package api

import (
	"fmt"

	"github.com/efoncier/survey-lab/internal/analysis"
	"github.com/efoncier/survey-lab/internal/auth"
	"github.com/efoncier/survey-lab/internal/auth/passcode"
	"github.com/efoncier/survey-lab/internal/auth/token"
	"github.com/efoncier/survey-lab/internal/config"
	"github.com/efoncier/survey-lab/internal/documents"
	"github.com/efoncier/survey-lab/internal/mailer"
	"github.com/efoncier/survey-lab/internal/notifications"
	"github.com/efoncier/survey-lab/internal/pages"
	"github.com/efoncier/survey-lab/internal/pipeline"
	"github.com/efoncier/survey-lab/internal/registry"
	"github.com/efoncier/survey-lab/internal/render"
	"github.com/efoncier/survey-lab/internal/report"
	"github.com/efoncier/survey-lab/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Tokens        *token.Issuer
	Auth          auth.System
	Users         users.System
	Documents     documents.System
	Pages         pages.System
	Notifications notifications.System
	Pipeline      *pipeline.Orchestrator
}

// NewDomain creates all domain systems from the API runtime and
// registers the pipeline with the lifecycle coordinator.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	usersSys := users.NewSystem(runtime.Database, runtime.Logger)

	reg, err := registry.New(&cfg.Registry, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("registry init failed: %w", err)
	}

	mail, err := mailer.New(&cfg.Mailer, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("mailer init failed: %w", err)
	}

	passcodes, err := passcode.New(&cfg.Auth.Passcode)
	if err != nil {
		return nil, fmt.Errorf("passcode store init failed: %w", err)
	}

	issuer := token.NewIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTLDuration())

	authSys := auth.NewSystem(&cfg.Auth, reg, usersSys, mail, passcodes, issuer, runtime.Logger)

	documentsSys := documents.New(runtime.Database, runtime.Storage, runtime.Logger, runtime.Pagination)
	pagesSys := pages.New(runtime.Database, runtime.Logger)
	notificationsSys := notifications.New(runtime.Database, runtime.Logger)

	renderer, err := render.New(&cfg.Renderer, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("renderer init failed: %w", err)
	}

	orchestrator := pipeline.New(
		&cfg.Pipeline,
		documentsSys,
		pagesSys,
		runtime.Storage,
		renderer,
		analysis.NewStub(),
		report.New(runtime.Logger),
		pipeline.NewNotifier(usersSys, notificationsSys, runtime.Logger),
		runtime.Logger,
	)
	if err := orchestrator.Start(runtime.Lifecycle); err != nil {
		return nil, fmt.Errorf("pipeline start failed: %w", err)
	}

	return &Domain{
		Tokens:        issuer,
		Auth:          authSys,
		Users:         usersSys,
		Documents:     documentsSys,
		Pages:         pagesSys,
		Notifications: notificationsSys,
		Pipeline:      orchestrator,
	}, nil
}
