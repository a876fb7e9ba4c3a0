// Package kernel builds the HTTP handler: global middleware, operational
// endpoints and the /api/v1 route table.
package kernel

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/souq/app/routes"
	"github.com/shashiranjanraj/souq/config"
	"github.com/shashiranjanraj/souq/pkg/cache"
	"github.com/shashiranjanraj/souq/pkg/locale"
	"github.com/shashiranjanraj/souq/pkg/metrics"
	"github.com/shashiranjanraj/souq/pkg/middleware"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shashiranjanraj/souq/pkg/reqid"
	"github.com/shashiranjanraj/souq/pkg/response"
	"github.com/shashiranjanraj/souq/pkg/router"
	"github.com/shashiranjanraj/souq/pkg/ws"
)

// Config carries what the kernel needs from the process.
type Config struct {
	DB  *orm.Query
	Hub *ws.Hub

	// Check backs GET /health. Nil reports healthy.
	Check func(ctx context.Context) error

	// StorageRoot, when set, is served under /storage/.
	StorageRoot string

	// RateLimitPerMinute overrides RATE_LIMIT_PER_MINUTE when positive.
	RateLimitPerMinute int
}

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel wires the middleware stack and every route.
func NewHTTPKernel(cfg Config) (*HTTPKernel, error) {
	orm.CacheStore = cache.Store{}

	if cfg.DB == nil {
		cfg.DB = orm.DB()
	}
	if cfg.Hub == nil {
		cfg.Hub = ws.NewHub()
	}
	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = config.RateLimitPerMinute()
	}

	r := router.New()

	// Global middleware (outermost first):
	//  1. metrics   - total latency including everything below
	//  2. reqid     - id exists before anything logs
	//  3. logger    - request log tagged with request_id
	//  4. recovery  - panics are logged with the request logger
	//  5. cors
	//  6. rate      - reject abusers before any DB work
	//  7. locale    - en/ar for storefront projections
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(perMinute))
	r.Use(locale.Middleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", "health", health(cfg.Check))
	r.Handle("/metrics", "metrics", metrics.Handler())
	if cfg.StorageRoot != "" {
		r.Handle("/storage/*", "storage", http.StripPrefix("/storage/", http.FileServer(http.Dir(cfg.StorageRoot))))
	}

	if err := routes.RegisterAPI(r, cfg.DB, cfg.Hub); err != nil {
		return nil, err
	}
	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists the route table for `souq route:list`.
func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }

func health(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		db := "ok"
		status := http.StatusOK
		if check != nil {
			c, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(c); err != nil {
				db, status = "unavailable", http.StatusServiceUnavailable
			}
		}
		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		response.Write(w, status, response.Envelope{
			Status: status,
			Data:   map[string]string{"status": state, "database": db},
		})
	}
}
