// Package metrics holds the Prometheus collectors of the streamer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var statuses = []string{"idle", "joining", "streaming", "stopping"}

var (
	sessionStartTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamer_session_start_total",
		Help: "Total number of stream start requests by result",
	}, []string{"result"})

	sessionStopTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamer_session_stop_total",
		Help: "Total number of session teardowns by the trigger that won the stop",
	}, []string{"trigger"})

	sessionStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "streamer_session_status",
		Help: "Current session status (1 for the active status, 0 otherwise)",
	}, []string{"status"})

	teardownSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "streamer_session_teardown_seconds",
		Help:    "Time from token trip until the session reached idle",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	graceExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamer_pipeline_grace_expired_total",
		Help: "Total number of teardowns where the pipeline did not acknowledge within the grace period",
	})

	pipelineErrorTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamer_pipeline_error_total",
		Help: "Total number of pipeline-reported terminal errors",
	})

	watchdogFiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamer_watchdog_fired_total",
		Help: "Total number of sessions stopped by the duration watchdog",
	})

	gateOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamer_gate_ops_total",
		Help: "Total number of connection gate operations",
	}, []string{"op", "result"})

	procTerminateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamer_proc_terminate_total",
		Help: "Signals sent to pipeline process groups",
	}, []string{"signal", "result"})
)

func IncSessionStart(result string) {
	sessionStartTotal.WithLabelValues(result).Inc()
}

func IncSessionStop(trigger string) {
	sessionStopTotal.WithLabelValues(trigger).Inc()
}

// SetStatus flips the status gauge so that exactly one label reads 1.
func SetStatus(status string) {
	for _, s := range statuses {
		v := 0.0
		if s == status {
			v = 1
		}
		sessionStatus.WithLabelValues(s).Set(v)
	}
}

func ObserveTeardown(seconds float64) {
	teardownSeconds.Observe(seconds)
}

func IncGraceExpired() {
	graceExpiredTotal.Inc()
}

func IncPipelineError() {
	pipelineErrorTotal.Inc()
}

func IncWatchdogFired() {
	watchdogFiredTotal.Inc()
}

func IncGateOp(op, result string) {
	gateOpsTotal.WithLabelValues(op, result).Inc()
}

func IncProcTerminate(signal, result string) {
	procTerminateTotal.WithLabelValues(signal, result).Inc()
}

func init() {
	SetStatus("idle")
}
