package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/roadrisk/core/assessment"
	"github.com/kilianp07/roadrisk/core/form"
	coremetrics "github.com/kilianp07/roadrisk/core/metrics"
	"github.com/kilianp07/roadrisk/core/model"
	"github.com/kilianp07/roadrisk/core/prediction"
)

func TestPromSink_RecordPrediction(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	ev := coremetrics.PredictionEvent{Priority: model.PriorityHigh, NeedsRepair: true, RiskScore: 65, Duration: time.Millisecond}
	require.NoError(t, sink.RecordPrediction(ev))
	require.NoError(t, sink.RecordPrediction(ev))
	require.NoError(t, sink.RecordDatasetSize(40))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.predictions.WithLabelValues("High", "true")))
	assert.Equal(t, 40.0, testutil.ToFloat64(sink.dataset))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.risk))
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	require.NoError(t, first.RecordPrediction(coremetrics.PredictionEvent{Priority: model.PriorityLow}))
	assert.Equal(t, 1.0, testutil.ToFloat64(second.predictions.WithLabelValues("Low", "false")))
}

func TestPredictionRecorderCountsEveryAssessment(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	engine := &prediction.MockPredictionEngine{Result: model.PredictionResult{DeteriorationRate: 12, RepairProbability: 0.9}}
	assessor := assessment.NewAssessor(engine, form.DefaultPolicy(), assessment.NewStore(), nil)
	assessor.AddRecorder(NewPredictionRecorder(sink))

	in := form.Input{RoadName: "A7", RoadAge: 10, TrafficVolume: 50, HeavyVehiclesPercentage: 20, AnnualRainfall: 40, TemperatureFluctuation: 30, SoilType: "clay"}
	for i := 0; i < 12; i++ {
		_, err := assessor.Assess(context.Background(), in)
		require.NoError(t, err)
	}
	var total float64
	for _, p := range []model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent} {
		for _, repair := range []string{"true", "false"} {
			total += testutil.ToFloat64(sink.predictions.WithLabelValues(string(p), repair))
		}
	}
	assert.Equal(t, 12.0, total)
}

func TestPredictionRecorderNilSink(t *testing.T) {
	r := NewPredictionRecorder(nil)
	require.NoError(t, r.RecordAssessment(context.Background(), model.Assessment{ID: "a"}))
}
