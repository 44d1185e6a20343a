package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP surface: the access-right routes, local-group and
// provisioning routes, plus /health and /metrics.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/endpoints/{id}/access-rights", func(r chi.Router) {
			r.Post("/", h.addEndpointAccessRights)
			r.Delete("/", h.deleteEndpointAccessRights)
			r.Get("/", h.getEndpointAccessRights)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Post("/", h.createClient)
			r.Get("/", h.listClients)
			r.Route("/{id}", func(r chi.Router) {
				r.Post("/services", h.createService)
				r.Route("/services/{code}/access-rights", func(r chi.Router) {
					r.Post("/", h.addServiceAccessRights)
					r.Delete("/", h.deleteServiceAccessRights)
				})
				r.Post("/endpoints", h.createEndpoint)
				r.Get("/endpoints", h.listEndpoints)
				r.Get("/service-clients", h.findServiceClientCandidates)
				r.Post("/local-groups", h.createLocalGroup)
				r.Get("/local-groups", h.listLocalGroups)
			})
		})

		r.Route("/local-groups/{id}", func(r chi.Router) {
			r.Get("/", h.getLocalGroup)
			r.Patch("/", h.patchLocalGroup)
			r.Delete("/", h.deleteLocalGroup)
			r.Post("/members", h.addLocalGroupMembers)
			r.Delete("/members", h.removeLocalGroupMembers)
		})
	})

	return r
}
