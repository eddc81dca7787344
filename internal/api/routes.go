package api

import (
	"net/http"

	"github.com/efoncier/survey-lab/internal/auth"
	"github.com/efoncier/survey-lab/internal/auth/token"
	"github.com/efoncier/survey-lab/internal/config"
	"github.com/efoncier/survey-lab/internal/documents"
	"github.com/efoncier/survey-lab/internal/notifications"
	"github.com/efoncier/survey-lab/internal/pages"
	"github.com/efoncier/survey-lab/internal/users"
	"github.com/efoncier/survey-lab/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, cfg *config.Config, runtime *Runtime, domain *Domain) {
	authHandler := auth.NewHandler(domain.Auth, runtime.Logger)
	usersHandler := users.NewHandler(domain.Users, runtime.Logger)
	documentsHandler := documents.NewHandler(
		domain.Documents,
		domain.Pipeline,
		runtime.Logger,
		runtime.Pagination,
		cfg.Storage.MaxUploadBytes(),
	)
	pagesHandler := pages.NewHandler(domain.Pages, domain.Documents, runtime.Storage, runtime.Logger)
	notificationsHandler := notifications.NewHandler(domain.Notifications, runtime.Logger)

	protected := routes.Group{
		Description: "authenticated endpoints",
		Middleware:  []routes.Middleware{token.RequireAuth(domain.Tokens)},
		Children: []routes.Group{
			usersHandler.Routes(),
			documentsHandler.Routes(),
			documentsHandler.UploadRoutes(),
			pagesHandler.StatusRoutes(),
			pagesHandler.ResultRoutes(),
			notificationsHandler.Routes(),
		},
	}

	routes.Register(mux, cfg.API.BasePath,
		authHandler.Routes(),
		protected,
	)
}
