// Package api serves leaderboards over HTTP. Reads are public; recompute and
// baseline actions require the admin bearer token.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/pool-cli/internal/config"
	"github.com/sells-group/pool-cli/internal/leaderboard"
	"github.com/sells-group/pool-cli/internal/scoring"
)

// Leaderboards is the part of leaderboard.Service the API drives.
type Leaderboards interface {
	Live(ctx context.Context, gameID string) (*leaderboard.Board, error)
	Breakdown(ctx context.Context, gameID, participant string) (scoring.Card, bool, error)
	Recompute(ctx context.Context, gameID string) (*leaderboard.WriteSummary, error)
	SetBaseline(ctx context.Context, gameID string, refresh bool) (*leaderboard.WriteSummary, error)
}

type handler struct {
	boards Leaderboards
}

// NewRouter builds the HTTP routes. A nil gatherer leaves /metrics unmounted.
func NewRouter(boards Leaderboards, cfg config.ServerConfig, gatherer prometheus.Gatherer) http.Handler {
	h := &handler{boards: boards}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/games/{game}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(time.Minute))

			r.Get("/leaderboard", h.getLeaderboard)
			r.Get("/leaderboard.png", h.getChart)
			r.Get("/participants/{participant}/breakdown", h.getBreakdown)
		})

		// Write-back is paced and can outlast any request timeout.
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin(cfg.AdminToken))

			r.Post("/recompute", h.recompute)
			r.Post("/baseline", h.setBaseline)
		})
	})

	return r
}
