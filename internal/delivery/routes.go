package delivery

import (
	"context"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voci-api/internal/delivery/router"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const healthTimeout = 2 * time.Second

type Handlers struct {
	MediaTypes *MediaTypeHandler
	Authors    *AuthorHandler
	Contents   *ContentHandler
}

// Pinger is the slice of *sql.DB the health check needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	BasePath    string
	CORSOrigins []string
	DB          Pinger
	Metrics     *Metrics
	Log         *logger.ZapLogger
}

// NewAPIRouter builds the resource route table. Order matters: the first
// pattern matching a path wins.
func NewAPIRouter(h Handlers, m *Metrics, basePath string) *router.Router {
	api := router.New(
		router.WithBasePath(basePath),
		router.WithNotFound(m.InstrumentNotFound(router.NotFoundHandler())),
	)

	add := func(method, pattern string, fn router.Handler) {
		api.Handle(method, pattern, m.Instrument(method, pattern, fn))
	}

	// media types
	add(http.MethodGet, "/media-types", h.MediaTypes.List)
	add(http.MethodGet, "/media-types/{id}", h.MediaTypes.Get)
	add(http.MethodPost, "/media-types", h.MediaTypes.Create)
	add(http.MethodPut, "/media-types/{id}", h.MediaTypes.Update)
	add(http.MethodDelete, "/media-types/{id}", h.MediaTypes.Delete)

	// authors
	add(http.MethodGet, "/authors", h.Authors.List)
	add(http.MethodGet, "/authors/{id}", h.Authors.Get)
	add(http.MethodPost, "/authors", h.Authors.Create)
	add(http.MethodPut, "/authors/{id}", h.Authors.Update)
	add(http.MethodDelete, "/authors/{id}", h.Authors.Delete)

	// contents
	add(http.MethodGet, "/contents", h.Contents.List)
	add(http.MethodGet, "/contents/{id}", h.Contents.Get)
	add(http.MethodPost, "/contents", h.Contents.Create)
	add(http.MethodPut, "/contents/{id}", h.Contents.Update)
	add(http.MethodDelete, "/contents/{id}", h.Contents.Delete)

	return api
}

// NewHTTPHandler mounts the API router under a chi mux that also serves
// /health and /metrics.
func NewHTTPHandler(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(opts.Log))
	r.Use(RecoverMiddleware(opts.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler(opts.DB))
	r.Handle("/metrics", opts.Metrics.Handler())

	api := NewAPIRouter(h, opts.Metrics, opts.BasePath)
	r.Handle("/*", api)

	routes := make([]string, 0, len(api.Routes()))
	for _, rt := range api.Routes() {
		routes = append(routes, rt.Method+" "+rt.Pattern)
	}
	opts.Log.Log(logger.LogEntry{
		Level:   "info",
		Message: "routes registered",
		Fields: map[string]any{
			"base_path": opts.BasePath,
			"routes":    routes,
		},
	})

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}
}
