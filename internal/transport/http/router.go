// Package httptransport assembles the public HTTP surface.
package httptransport

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	formhandler "oppform/internal/form/handler"
	"oppform/internal/geo"
	"oppform/internal/platform/middleware"
	"oppform/internal/platform/redis"
	"oppform/pkg/platform/httputil"
)

// Deps carries everything the router mounts. DB and Redis may be nil when
// the process runs on in-memory stores.
type Deps struct {
	Forms     *formhandler.Handler
	Countries *geo.Handler
	DB        *sql.DB
	Redis     *redis.Client
	Logger    *slog.Logger
}

// NewRouter wires the middleware chain, the domain handlers and the health
// endpoint.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Identity)

	deps.Forms.Register(r)
	deps.Countries.Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if deps.DB != nil {
			if err := deps.DB.PingContext(ctx); err != nil {
				status["status"] = "degraded"
				status["database"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		if deps.Redis != nil {
			if err := deps.Redis.Health(ctx); err != nil {
				status["status"] = "degraded"
				status["redis"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		httputil.WriteJSON(w, code, status)
	})

	return r
}
