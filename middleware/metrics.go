package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/spetersoncode/flux"
)

// Recorder holds the Prometheus instruments used by [Metrics].
type Recorder struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder creates the dispatch instruments and registers them with reg.
// A nil reg creates unregistered instruments.
//
// Instruments:
//   - flux_dispatch_total (counter): dispatches by action and status ("ok" or "error")
//   - flux_dispatch_duration_seconds (histogram): dispatch latency by action
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flux_dispatch_total",
			Help: "Total dispatches by action type and status",
		}, []string{"action", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flux_dispatch_duration_seconds",
			Help:    "Dispatch duration in seconds, including reducer and listeners",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16), // 10µs to ~330ms
		}, []string{"action"}),
	}
}

// Metrics returns middleware that records every dispatch in rec.
func Metrics[S any](rec *Recorder) flux.Middleware[S] {
	return func(api flux.MiddlewareAPI[S]) flux.Link {
		return func(next flux.Dispatch) flux.Dispatch {
			return func(a flux.Action) (any, error) {
				start := time.Now()
				result, err := next(a)

				status := "ok"
				if err != nil {
					status = "error"
				}
				rec.dispatches.WithLabelValues(a.Type(), status).Inc()
				rec.duration.WithLabelValues(a.Type()).Observe(time.Since(start).Seconds())

				return result, err
			}
		}
	}
}
