// Package metrics exposes run counters in Prometheus form. Every Metrics
// owns its registry so concurrent runs (and tests) never collide.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
	"github.com/UCLA-VAST/minimap2-acceleration/core/sched"
)

// Metrics holds the counters updated while chaining. A nil *Metrics is a
// valid no-op.
type Metrics struct {
	Registry *prometheus.Registry

	rounds      prometheus.Counter
	batches     prometheus.Counter
	nullBatches prometheus.Counter
	activeLanes prometheus.Histogram
	results     prometheus.Counter
	anchors     prometheus.Counter
	chained     prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		rounds: f.NewCounter(prometheus.CounterOpts{
			Name: "mm2chain_rounds_total",
			Help: "Scheduler rounds chained",
		}),
		batches: f.NewCounter(prometheus.CounterOpts{
			Name: "mm2chain_batches_total",
			Help: "Lane batches issued, null batches included",
		}),
		nullBatches: f.NewCounter(prometheus.CounterOpts{
			Name: "mm2chain_null_batches_total",
			Help: "Batches issued to idle lanes",
		}),
		activeLanes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mm2chain_round_active_lanes",
			Help:    "Lanes carrying real work per round",
			Buckets: prometheus.LinearBuckets(1, 1, 16),
		}),
		results: f.NewCounter(prometheus.CounterOpts{
			Name: "mm2chain_results_total",
			Help: "Queries chained and released",
		}),
		anchors: f.NewCounter(prometheus.CounterOpts{
			Name: "mm2chain_anchors_total",
			Help: "Anchors scored",
		}),
		chained: f.NewCounter(prometheus.CounterOpts{
			Name: "mm2chain_chained_anchors_total",
			Help: "Anchors whose best predecessor is another anchor",
		}),
	}
}

// ObserveRound records one scheduler round.
func (m *Metrics) ObserveRound(r sched.Round) {
	if m == nil {
		return
	}
	active := r.Active()
	m.rounds.Inc()
	m.batches.Add(float64(len(r.Batches)))
	m.nullBatches.Add(float64(len(r.Batches) - active))
	m.activeLanes.Observe(float64(active))
}

// ObserveResult records one released result.
func (m *Metrics) ObserveResult(r chain.Result) {
	if m == nil {
		return
	}
	m.results.Inc()
	m.anchors.Add(float64(r.Len()))
	n := 0
	for _, p := range r.Parents {
		if p >= 0 {
			n++
		}
	}
	m.chained.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done. It returns once the
// listener is bound so scrape failures surface as startup errors; the
// returned address is the bound one (useful with ":0").
func (m *Metrics) Serve(ctx context.Context, addr string, log *slog.Logger) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server stopped", slog.String("error", err.Error()))
		}
	}()
	log.Debug("serving metrics", slog.String("addr", ln.Addr().String()))
	return ln.Addr().String(), nil
}
