// Package api configures and exposes the HTTP server, routes, metrics, docs
// and related middleware for the back-office service.
package api

import (
	"backoffice/internal/api/handler"
	"backoffice/internal/api/mvc"
	"backoffice/internal/auth"
	"backoffice/internal/config"
	"backoffice/pkg/controller"
	"backoffice/pkg/logger"
	"backoffice/pkg/metrics"
	"backoffice/pkg/storage"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec contains the embedded OpenAPI specification of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// staticFiles contains the embedded static assets served under /static/.
//
//go:embed static
var staticFiles embed.FS

// Options holds configuration for the HTTP server and its dependencies.
type Options struct {
	// Environment selects the pipeline branch: production gets strict
	// transport and a generic error handler, anything else gets permissive
	// CORS and verbose errors.
	Environment string
	// DatabaseName is echoed by the ping endpoint.
	DatabaseName string

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler. Zero disables it.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Environment:  cfg.Environment,
		DatabaseName: cfg.Database.DatabaseName,

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// Deps carries the services the API serves.
type Deps struct {
	// Storage is the database-backed capability bundle (probes, users).
	Storage storage.AllStorage
	// Auth authenticates credentials for the login endpoint.
	Auth *auth.Service
	// Tokens validates bearer tokens on protected routes.
	Tokens *auth.TokenService
}

// NewServer wires up and returns a configured *http.Server. It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - OpenTelemetry request metrics with the shared latency buckets
// - Embedded OpenAPI spec and Swagger UI
// - health, diagnostic, auth and user routes
// - the default controller/action route and static files
// - pprof endpoints for profiling
// The middleware chain branches once on the environment: production enforces
// strict transport and hides error detail, every other environment attaches
// the permissive CORS policy and verbose error responses.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	mux := http.NewServeMux()

	// prometheus metrics endpoint; a per-server registry keeps multiple
	// instances (e.g. in tests) from colliding
	registry := prometheus.NewRegistry()
	mux.Handle(opts.MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// otel
	exp, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exp),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "http.server.request.duration"},
			sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
				Boundaries: metrics.DefaultBuckets,
			}},
		)),
	)

	// specs file + swagger playground
	mux.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	mux.Handle("/docs/", v5emb.New(
		"Backoffice API",
		"/specs/v1.yaml",
		"/docs/",
	))

	h := handler.New(handler.Deps{
		Storage: deps.Storage,
		Auth:    deps.Auth,
		Tokens:  deps.Tokens,
	}, handler.Options{
		Environment:  opts.Environment,
		DatabaseName: opts.DatabaseName,
	})

	// both health routes share one handler; readiness has no extra logic
	health := h.Health()
	mux.Handle("GET /health", health)
	mux.Handle("GET /health/ready", health)

	mux.Handle("GET /api/ping", h.Ping())
	mux.Handle("GET /api/database-check", h.DatabaseCheck())
	mux.Handle("POST /api/auth/login", h.Login())
	mux.Handle("GET /api/users", h.RequireAuth(h.ListUsers()))

	// pprof
	mux.Handle("/debug/pprof/", controller.PprofMux())

	// static assets
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("could not open static assets: %w", err)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// default controller/action route
	router := mvc.NewRouter()
	router.Register("Home", homeController(opts))
	mux.Handle("/", router)

	// request metrics
	chain, err := controller.WithMetrics(mp.Meter("backoffice/api"), mux)
	if err != nil {
		return nil, fmt.Errorf("could not create metrics middleware: %w", err)
	}

	// environment branch: CORS stays out of production, strict transport
	// stays out of everything else
	production := opts.Environment == logger.ProductionEnvironment
	if production {
		chain = controller.WithStrictTransport(chain)
	} else {
		chain = controller.WithCORS(chain)
	}
	chain = controller.WithRecovery(!production, chain)
	chain = controller.WithLogger(chain)

	if opts.RequestTimeout > 0 {
		chain = http.TimeoutHandler(chain, opts.RequestTimeout, `{"error":"request timed out"}`)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           chain,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
