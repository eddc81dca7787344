// Package api assembles the domain systems and HTTP surface of the
// screening service.
package api

import (
	"net/http"

	"github.com/efoncier/survey-lab/internal/config"
	"github.com/efoncier/survey-lab/internal/infrastructure"
	"github.com/efoncier/survey-lab/pkg/handlers"
	"github.com/efoncier/survey-lab/pkg/middleware"
)

// New builds the complete HTTP handler: domain routes under the API
// base path, health check, and static serving for stored artifacts.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) (http.Handler, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(cfg, runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, cfg, runtime, domain)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := runtime.Database.Health(r.Context()); err != nil {
			handlers.RespondError(w, runtime.Logger, http.StatusServiceUnavailable, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Stored artifacts (rasters, report PDFs) are served directly from
	// the storage root; store URL generation points here.
	files := http.FileServer(http.Dir(cfg.Storage.Root))
	mux.Handle("GET /files/", http.StripPrefix("/files/", files))

	var handler http.Handler = mux
	handler = middleware.Logger(runtime.Logger)(handler)
	handler = middleware.CORS(&cfg.API.CORS)(handler)
	handler = middleware.TrimSlash()(handler)

	return handler, nil
}
