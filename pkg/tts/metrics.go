package tts

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	QueryTime *prometheus.HistogramVec
	Errors    *prometheus.CounterVec
}

var metrics = &Metrics{
	QueryTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "tts",
		Name:      "request_seconds",
	}, []string{"provider"}),
	Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "tts",
		Name:      "errors_total",
	}, []string{"provider", "err_code"}),
}

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(metrics.QueryTime)
	reg.MustRegister(metrics.Errors)
}
