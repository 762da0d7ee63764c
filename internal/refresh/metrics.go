package refresh

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK     = "ok"
	outcomeEmpty  = "empty"
	outcomeFailed = "failed"
	outcomeStale  = "stale"
)

var refreshes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "zion_refresh_total",
		Help: "Content refreshes by target and outcome.",
	},
	[]string{"target", "outcome"},
)

func init() {
	prometheus.MustRegister(refreshes)
}

func record(target, outcome string) {
	refreshes.WithLabelValues(target, outcome).Inc()
}
