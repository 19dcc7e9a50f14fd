package metrics

import (
	"time"

	"github.com/kilianp07/roadrisk/core/model"
)

// PredictionEvent summarises one assessment for observability purposes.
type PredictionEvent struct {
	ID                string
	RoadName          string
	Priority          model.Priority
	RiskScore         int
	DeteriorationRate float64
	Lifespan          float64
	NeedsRepair       bool
	Neighbours        int
	Duration          time.Duration
	Time              time.Time
}

// EventFromAssessment builds the event recorded for a.
func EventFromAssessment(a model.Assessment) PredictionEvent {
	return PredictionEvent{
		ID:                a.ID,
		RoadName:          a.RoadName,
		Priority:          a.Priority,
		RiskScore:         a.RiskScore,
		DeteriorationRate: a.DeteriorationRate,
		Lifespan:          a.Lifespan,
		NeedsRepair:       a.NeedsRepair,
		Neighbours:        len(a.SimilarRoads),
		Duration:          a.ComputeTime,
		Time:              a.Timestamp,
	}
}

// MetricsSink records prediction events.
type MetricsSink interface {
	RecordPrediction(ev PredictionEvent) error
}

// DatasetSizeRecorder is implemented by sinks able to record the size of
// the reference dataset.
type DatasetSizeRecorder interface {
	RecordDatasetSize(size int) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionEvent) error { return nil }

// Ensure NopSink implements DatasetSizeRecorder.
func (NopSink) RecordDatasetSize(int) error { return nil }
