package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	dropped  *prometheus.CounterVec

	queueDepth    prometheus.Gauge
	activeWorkers prometheus.Gauge
	completed     prometheus.Counter
	taskErrors    prometheus.Counter
	taskDuration  prometheus.Histogram
}

// Registered once per process; tests build many caches and queues.
var (
	metricsInstance *metrics
	metricsOnce     sync.Once
	metricsRegistry = prometheus.DefaultRegisterer
)

func getMetrics() *metrics {
	metricsOnce.Do(func() {
		f := promauto.With(metricsRegistry)
		metricsInstance = &metrics{
			requests: f.NewCounterVec(prometheus.CounterOpts{
				Name: "cache_requests_total",
				Help: "Cache lookups by value shape, key family and result",
			}, []string{"shape", "family", "result"}),
			errors: f.NewCounterVec(prometheus.CounterOpts{
				Name: "cache_errors_total",
				Help: "Cache store calls that failed and were swallowed",
			}, []string{"op"}),
			dropped: f.NewCounterVec(prometheus.CounterOpts{
				Name: "cache_population_dropped_total",
				Help: "Cache populations that were skipped",
			}, []string{"reason"}),
			queueDepth: f.NewGauge(prometheus.GaugeOpts{
				Name: "cache_task_queue_depth",
				Help: "Current number of tasks waiting in queue",
			}),
			activeWorkers: f.NewGauge(prometheus.GaugeOpts{
				Name: "cache_task_queue_active_workers",
				Help: "Current number of workers running a task",
			}),
			completed: f.NewCounter(prometheus.CounterOpts{
				Name: "cache_task_queue_completed_total",
				Help: "Total number of tasks run",
			}),
			taskErrors: f.NewCounter(prometheus.CounterOpts{
				Name: "cache_task_queue_errors_total",
				Help: "Total number of tasks that returned an error",
			}),
			taskDuration: f.NewHistogram(prometheus.HistogramOpts{
				Name:    "cache_task_duration_seconds",
				Help:    "Time taken to run a task",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
			}),
		}
	})
	return metricsInstance
}
