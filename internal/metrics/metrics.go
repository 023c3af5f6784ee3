// Package metrics exports the progress of decompositions as Prometheus
// metrics.
package metrics

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	scc "github.com/sybila/biodivine-lib-algo-scc"
)

// Recorder is an scc.Observer that updates Prometheus collectors. It is safe
// for concurrent use.
type Recorder struct {
	tasks           prometheus.Counter
	components      prometheus.Counter
	componentStates prometheus.Histogram
	reachSteps      *prometheus.CounterVec
	taskDepth       prometheus.Gauge
	trimSteps       prometheus.Counter
}

var _ scc.Observer = (*Recorder)(nil)

// New registers the collectors of a Recorder on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		tasks: f.NewCounter(prometheus.CounterOpts{
			Name: "scc_tasks_total",
			Help: "Total decomposition tasks processed",
		}),
		components: f.NewCounter(prometheus.CounterOpts{
			Name: "scc_components_total",
			Help: "Total non-trivial SCCs found",
		}),
		componentStates: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "scc_component_states",
			Help:    "Number of states of the SCCs found",
			Buckets: prometheus.ExponentialBuckets(2, 2, 20), // 2 to ~1M states
		}),
		reachSteps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scc_reachability_steps_total",
			Help: "Total symbolic steps of reachability computations by direction and strategy",
		}, []string{"direction", "strategy"}),
		taskDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "scc_task_depth",
			Help: "Depth of the last started task",
		}),
		trimSteps: f.NewCounter(prometheus.CounterOpts{
			Name: "scc_trim_steps_total",
			Help: "Total trimming steps that removed states",
		}),
	}
}

// TaskStarted counts a task and records its depth.
func (r *Recorder) TaskStarted(depth int) {
	r.tasks.Inc()
	r.taskDepth.Set(float64(depth))
}

// ComponentFound counts a component and observes its number of states.
func (r *Recorder) ComponentFound(states *big.Int) {
	r.components.Inc()
	f, _ := new(big.Float).SetInt(states).Float64()
	r.componentStates.Observe(f)
}

// ReachabilityDone adds the steps of a reachability computation.
func (r *Recorder) ReachabilityDone(dir scc.Direction, strategy scc.ReachStrategy, steps int) {
	r.reachSteps.WithLabelValues(dir.String(), strategy.String()).Add(float64(steps))
}

// TrimDone adds the steps of a trimming.
func (r *Recorder) TrimDone(steps int) {
	r.trimSteps.Add(float64(steps))
}

// Serve exposes the metrics gathered by g on addr, at path /metrics, until
// ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
