package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/roadrisk/core/model"
	"github.com/kilianp07/roadrisk/core/prediction"
)

const tolerance = 1e-9

func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	refs, err := sc.References()
	require.NoError(t, err)

	res, err := prediction.Predict(sc.Query, refs, sc.K)
	exp := sc.Expected
	if exp.Error {
		require.ErrorIs(t, err, prediction.ErrInvalidInput)
		return
	}
	require.NoError(t, err)

	if exp.DeteriorationRate != nil {
		assert.InDelta(t, *exp.DeteriorationRate, res.DeteriorationRate, tolerance, "deterioration rate")
	}
	if exp.RepairProbability != nil {
		assert.InDelta(t, *exp.RepairProbability, res.RepairProbability, tolerance, "repair probability")
	}
	if exp.NeedsRepair != nil {
		assert.Equal(t, *exp.NeedsRepair, res.NeedsRepair, "needs repair")
	}
	if exp.RiskScore != nil {
		assert.Equal(t, *exp.RiskScore, res.RiskScore, "risk score")
	}
	if exp.MinRiskScore != nil {
		assert.GreaterOrEqual(t, res.RiskScore, *exp.MinRiskScore, "min risk score")
	}
	if exp.MaxRiskScore != nil {
		assert.LessOrEqual(t, res.RiskScore, *exp.MaxRiskScore, "max risk score")
	}
	if exp.Lifespan != nil {
		assert.InDelta(t, *exp.Lifespan, res.Lifespan, tolerance, "lifespan")
	}
	if exp.Priority != "" {
		assert.Equal(t, model.Priority(exp.Priority), model.PriorityFor(res.RiskScore), "priority")
	}
	if exp.Neighbours != nil {
		assert.Len(t, res.SimilarRoads, *exp.Neighbours, "neighbours")
		assert.Len(t, res.Similarities, *exp.Neighbours, "similarities")
	}
}
