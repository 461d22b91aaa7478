package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// configMetrics tracks configuration loads and their failures.
type configMetrics struct {
	LoadTimestamp         prometheus.Gauge
	LoadErrorsTotal       *prometheus.CounterVec
	ValidationErrorsTotal *prometheus.CounterVec
}

var boardConfigMetrics = &configMetrics{
	LoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "board_config_load_timestamp",
		Help: "Unix timestamp of the last successful configuration load",
	}),
	LoadErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_config_load_errors_total",
		Help: "Total number of failed configuration loads by stage",
	}, []string{"stage"}),
	ValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_config_validation_errors_total",
		Help: "Total number of configuration validation errors by field",
	}, []string{"field"}),
}

func (m *configMetrics) RecordLoad() {
	m.LoadTimestamp.SetToCurrentTime()
}

func (m *configMetrics) RecordLoadError(stage string) {
	m.LoadErrorsTotal.WithLabelValues(stage).Inc()
}

func (m *configMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}
