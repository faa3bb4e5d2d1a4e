package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpupo63/artist-portfolio-backend/metrics"
	"github.com/rpupo63/artist-portfolio-backend/services"
)

// setupFrontendRoutes registers the catalog API. Reads are public; every
// mutation needs the admin bearer secret.
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/projects", handlers.projectHandler.getProjects())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects", handlers.projectHandler.updateProject())
			r.Delete("/projects", handlers.projectHandler.deleteProject())
			r.Post("/upload", handlers.uploadHandler.uploadFile())
		})
	})
}

func setupOperationalRoutes(r chi.Router, startupTime time.Time, metricsEnabled bool) {
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		NewResponder(ctxGetLogger(req.Context())).WriteJSON(w, map[string]any{
			"status":  "ok",
			"uptime":  time.Since(startupTime).Round(time.Second).String(),
			"started": startupTime.UTC().Format(time.RFC3339),
		})
	})

	if metricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	}
}

// setupStaticRoutes serves locally stored uploads under /uploads/.
func setupStaticRoutes(r chi.Router, uploadsDir string) {
	fileServer := http.StripPrefix(services.UploadsURLPrefix+"/", http.FileServer(http.Dir(uploadsDir)))
	r.Get(services.UploadsURLPrefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fileServer.ServeHTTP(w, req)
	})
}
