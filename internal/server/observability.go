// Observability middleware and HTTP server for metrics and profiling
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nainya/photoquery/internal/logger"
	"github.com/nainya/photoquery/internal/metrics"
)

// MetricsMiddleware records request counts, durations and in-flight requests
func MetricsMiddleware(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.QueryRequestsInFlight.Inc()
		defer m.QueryRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		status := "success"
		if rec.status >= 400 {
			status = "error"
		}
		m.RecordQueryRequest(status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// ObservabilityServer provides HTTP endpoints for metrics, profiling and
// queries
type ObservabilityServer struct {
	server *http.Server
	log    *logger.Logger
}

// NewObservabilityServer creates a new HTTP server. The query handler is
// mounted at /query when not nil.
func NewObservabilityServer(port int, gatherer prometheus.Gatherer, m *metrics.Metrics, queries http.Handler, log *logger.Logger) *ObservabilityServer {
	return &ObservabilityServer{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      NewMux(gatherer, m, queries),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}
}

// NewMux builds the routes of the observability server
func NewMux(gatherer prometheus.Gatherer, m *metrics.Metrics, queries http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.Handle("/health", statusHandler(`{"status":"healthy","service":"photoquery"}`))
	mux.Handle("/ready", statusHandler(`{"status":"ready"}`))

	if queries != nil {
		if m != nil {
			queries = MetricsMiddleware(m, queries)
		}
		mux.Handle("/query", queries)
	}

	// pprof endpoints for profiling
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

func statusHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	})
}

// Start serves until Shutdown is called
func (o *ObservabilityServer) Start() error {
	base := "http://localhost" + o.server.Addr
	o.log.Info("HTTP endpoints available").
		Str("query", base+"/query?q=").
		Str("metrics", base+"/metrics").
		Str("health", base+"/health").
		Str("pprof", base+"/debug/pprof/").
		Send()

	if err := o.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen %s: %w", o.server.Addr, err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for running ones until ctx
// is done
func (o *ObservabilityServer) Shutdown(ctx context.Context) error {
	o.log.Debug("Draining HTTP connections").Send()
	return o.server.Shutdown(ctx)
}
