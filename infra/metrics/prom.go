package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/roadrisk/core/metrics"
)

// PromSink records prediction events in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	risk        prometheus.Histogram
	duration    prometheus.Histogram
	dataset     prometheus.Gauge
}

// NewPromSink registers prediction metrics on the default Prometheus registerer.
// The /metrics endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "road_predictions_total",
		Help: "Total number of road deterioration predictions",
	}, []string{"priority", "needs_repair"})
	risk := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "road_prediction_risk_score",
		Help:    "Distribution of predicted risk scores",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "road_prediction_duration_seconds",
		Help:    "Time spent computing a prediction",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	})
	dataset := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "road_reference_dataset_size",
		Help: "Number of observations in the reference dataset",
	})

	var err error
	if predictions, err = register(reg, predictions); err != nil {
		return nil, err
	}
	if risk, err = register(reg, risk); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if dataset, err = register(reg, dataset); err != nil {
		return nil, err
	}
	return &PromSink{predictions: predictions, risk: risk, duration: duration, dataset: dataset}, nil
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPrediction counts the prediction and observes its score and duration.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	s.predictions.WithLabelValues(string(ev.Priority), strconv.FormatBool(ev.NeedsRepair)).Inc()
	s.risk.Observe(float64(ev.RiskScore))
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}

// RecordDatasetSize sets the dataset gauge.
func (s *PromSink) RecordDatasetSize(size int) error {
	s.dataset.Set(float64(size))
	return nil
}
