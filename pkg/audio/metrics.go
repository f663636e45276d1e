package audio

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	ConvertTime  prometheus.Histogram
	DecodeErrors *prometheus.CounterVec
}

var metrics = &Metrics{
	ConvertTime: prometheus.NewHistogram(prometheus.HistogramOpts{
		Subsystem: "audio",
		Name:      "convert_seconds",
	}),
	DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "audio",
		Name:      "decode_errors_total",
	}, []string{"container"}),
}

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(metrics.ConvertTime)
	reg.MustRegister(metrics.DecodeErrors)
}
