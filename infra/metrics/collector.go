package metrics

import (
	"context"

	coremetrics "github.com/kilianp07/roadrisk/core/metrics"
	"github.com/kilianp07/roadrisk/core/model"
)

// PredictionRecorder records every assessment it receives in Sink.
type PredictionRecorder struct {
	Sink coremetrics.MetricsSink
}

// NewPredictionRecorder returns a recorder for sink. A nil sink records
// nothing.
func NewPredictionRecorder(sink coremetrics.MetricsSink) PredictionRecorder {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return PredictionRecorder{Sink: sink}
}

// RecordAssessment converts a to a prediction event and records it.
func (r PredictionRecorder) RecordAssessment(_ context.Context, a model.Assessment) error {
	return r.Sink.RecordPrediction(coremetrics.EventFromAssessment(a))
}
