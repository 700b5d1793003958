package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// prometheus metrics
var fetchSkips = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "trendwatch_fetch_skips_total",
		Help: "Cycles skipped because no usable price data was fetched",
	},
)
var cycles = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "trendwatch_cycles_total",
		Help: "Completed monitor task evaluation cycles",
	},
)
var alertsSent = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "trendwatch_alerts_sent_total",
		Help: "Crossover alerts delivered",
	},
)
var notifyFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "trendwatch_notify_failures_total",
		Help: "Notification deliveries that failed",
	},
)
var runningTasks = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "trendwatch_running_tasks",
		Help: "Monitor tasks currently running",
	},
)

// RegisterMetrics registers the monitor metrics with the provided registerer.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(fetchSkips, cycles, alertsSent, notifyFailures, runningTasks)
}
