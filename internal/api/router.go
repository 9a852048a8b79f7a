package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lexiqai/voice-studio/internal/api/handlers"
	"github.com/lexiqai/voice-studio/internal/api/middleware"
	"github.com/lexiqai/voice-studio/internal/catalog"
	"github.com/lexiqai/voice-studio/internal/observability"
	"github.com/lexiqai/voice-studio/internal/resilience"
)

// Deps are the services behind the HTTP surface
type Deps struct {
	Store          catalog.Store
	Refresher      handlers.Refresher
	Synthesizer    handlers.Synthesizer
	Breaker        *resilience.CircuitBreaker
	PublicDir      string
	AllowedOrigins []string
	MetricsEnabled bool
	// ExtraChecks are added to the readiness endpoint
	ExtraChecks []observability.NamedCheck
}

// NewRouter wires the API, health, metrics and static file routes
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(deps.AllowedOrigins))

	r.Get("/health", observability.HealthCheckHandler())
	r.Get("/ready", observability.ReadinessHandler(readinessChecks(deps)...))

	if deps.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	voicesH := handlers.NewVoicesHandler(deps.Refresher, deps.Store)
	ssmlH := handlers.NewSSMLHandler()
	synthH := handlers.NewSynthesisHandler(deps.Synthesizer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/fetchVoices", voicesH.FetchVoices)
		r.Get("/listVoices", voicesH.ListVoices)
		r.Post("/generateSSML", ssmlH.GenerateSSML)
		r.Post("/synthesize", synthH.Synthesize)
	})

	if deps.PublicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.PublicDir)))
	}

	return r
}

func readinessChecks(deps Deps) []observability.NamedCheck {
	checks := []observability.NamedCheck{
		{Name: "catalog", Check: func(ctx context.Context) (bool, error) {
			if !deps.Store.Exists() {
				return false, catalog.ErrCatalogNotFound
			}
			return true, nil
		}},
	}

	if deps.Breaker != nil {
		checks = append(checks, observability.NamedCheck{Name: deps.Breaker.Name(), Check: func(ctx context.Context) (bool, error) {
			if deps.Breaker.GetState() == resilience.StateOpen {
				return false, resilience.ErrCircuitOpen
			}
			return true, nil
		}})
	}

	return append(checks, deps.ExtraChecks...)
}
