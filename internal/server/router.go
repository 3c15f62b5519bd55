package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RouterOptions tunes the API router.
type RouterOptions struct {
	// Latency delays every /api request, to make overlapping searches observable.
	Latency time.Duration
	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
	// TracerProvider for server spans. Nil uses the global provider.
	TracerProvider trace.TracerProvider
}

// NewRouter builds the HTTP handler: the hero resource under /api/heroes plus
// /health and /metrics.
func NewRouter(store Store, logger *zap.Logger, reg *prometheus.Registry, opts RouterOptions) http.Handler {
	metrics := NewMetrics(reg)
	heroes := NewHeroHandler(store, metrics, logger)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(tracingMiddleware(opts.TracerProvider))
	router.Use(requestLogger(logger))
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "traceparent"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	router.Route("/api", func(r chi.Router) {
		r.Use(delay(opts.Latency))
		r.Route("/heroes", func(r chi.Router) {
			r.Get("/", heroes.ListHeroes)
			r.Post("/", heroes.CreateHero)
			r.Put("/", heroes.UpdateHero)
			r.Get("/{heroID}", heroes.GetHero)
			r.Delete("/{heroID}", heroes.DeleteHero)
		})
	})
	return router
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}

// delay holds each request for d, or until the client goes away.
func delay(d time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-t.C:
			case <-r.Context().Done():
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
