// Package kernel assembles the HTTP handler: global middleware stack,
// operational endpoints, and the marketplace API routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/digiteria/app/graph"
	"github.com/shashiranjanraj/digiteria/app/routes"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
	"github.com/shashiranjanraj/digiteria/pkg/metrics"
	"github.com/shashiranjanraj/digiteria/pkg/middleware"
	"github.com/shashiranjanraj/digiteria/pkg/reqid"
	"github.com/shashiranjanraj/digiteria/pkg/response"
	"github.com/shashiranjanraj/digiteria/pkg/router"
	"github.com/shashiranjanraj/digiteria/pkg/session"
)

// Build constructs the full HTTP handler from the shared dependencies.
//
// Global middleware, outermost first:
//  1. Prometheus metrics — outermost for accurate total latency
//  2. Recovery           — catches panics before they kill the goroutine
//  3. Request ID         — inject unique ID before anything logs
//  4. Logger             — logs request_id from context
//  5. Session            — load/create session cookie via Redis
//  6. CORS               — set CORS headers
//  7. Rate limiter       — reject abusers early
func Build(deps routes.Deps) http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Operational endpoints — no auth.
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	if h, err := graph.Handler(deps.Store); err != nil {
		logger.Error("kernel: graphql schema failed, endpoint disabled", "error", err)
	} else {
		r.Post("/graphql", "graphql", h)
	}

	routes.RegisterAPI(r, deps)

	return r.Handler()
}
