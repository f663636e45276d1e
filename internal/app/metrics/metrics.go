package metrics

import (
	"app/pkg/audio"
	"app/pkg/tts"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterMetrics hooks up every package that exports collectors.
func RegisterMetrics(reg prometheus.Registerer) {
	tts.RegisterMetrics(reg)
	audio.RegisterMetrics(reg)
}
