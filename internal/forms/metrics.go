package forms

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK      = "ok"
	outcomeFailed  = "failed"
	outcomeInvalid = "invalid"
)

var submissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "zion_form_submissions_total",
		Help: "Form submissions by form and outcome.",
	},
	[]string{"form", "outcome"},
)

func init() {
	prometheus.MustRegister(submissions)
}
