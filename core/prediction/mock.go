package prediction

import "github.com/kilianp07/roadrisk/core/model"

// MockPredictionEngine returns a fixed result, or Err when set.
type MockPredictionEngine struct {
	Result model.PredictionResult
	Err    error
	Calls  []model.RoadObservation
}

// Predict records the query and returns the configured result.
func (m *MockPredictionEngine) Predict(q model.RoadObservation) (model.PredictionResult, error) {
	m.Calls = append(m.Calls, q)
	if m.Err != nil {
		return model.PredictionResult{}, m.Err
	}
	res := m.Result
	res.SimilarRoads = append([]model.RoadObservation(nil), m.Result.SimilarRoads...)
	return res, nil
}
