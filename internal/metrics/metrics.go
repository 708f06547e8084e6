// Package metrics provides Prometheus metrics for the price prediction
// service: prediction throughput, failures, rejected inputs, inference
// latency, and the distribution of predicted prices.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	PredictionsTotal   prometheus.Counter   // Successful predictions served
	PredictionFailures prometheus.Counter   // Inference failures
	UnknownLabels      prometheus.Counter   // Submissions rejected for an unrecognized category
	InvalidInputs      prometheus.Counter   // Submissions rejected by range validation
	PredictionLatency  prometheus.Histogram // End-to-end inference latency in seconds
	PredictedPrices    prometheus.Histogram // Distribution of predicted prices (EUR)
	ModelAge           prometheus.Gauge     // Age of the loaded model in seconds
	HistoryWrites      prometheus.Counter   // Prediction records persisted
	HistoryWriteErrors prometheus.Counter   // Failed history writes
}

// New creates and registers all metrics using the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics with a custom registry (useful for
// testing, where the global registry would collide across test cases).
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		PredictionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of successful price predictions",
		}),
		PredictionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "prediction_failures_total",
			Help: "Total number of inference failures",
		}),
		UnknownLabels: factory.NewCounter(prometheus.CounterOpts{
			Name: "unknown_labels_total",
			Help: "Submissions rejected because a categorical label was not in the trained vocabulary",
		}),
		InvalidInputs: factory.NewCounter(prometheus.CounterOpts{
			Name: "invalid_inputs_total",
			Help: "Submissions rejected by numeric range validation",
		}),
		PredictionLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_latency_seconds",
			Help:    "End-to-end inference latency in seconds",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		PredictedPrices: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "predicted_prices_eur",
			Help:    "Distribution of predicted laptop prices in EUR",
			Buckets: prometheus.LinearBuckets(0, 500, 13),
		}),
		ModelAge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "model_age_seconds",
			Help: "Age of the loaded model in seconds",
		}),
		HistoryWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "history_writes_total",
			Help: "Total number of prediction records persisted",
		}),
		HistoryWriteErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "history_write_errors_total",
			Help: "Total number of failed prediction history writes",
		}),
	}
}
