package prediction

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/roadrisk/core/model"
)

// Fallback values used when every selected neighbour has zero similarity.
const (
	FallbackDeteriorationRate = 15
	FallbackRepairProbability = 0.5
)

// DefaultK is the neighbour count used when none is configured.
const DefaultK = 10

// PredictionEngine produces a deterioration prediction for a query observation.
type PredictionEngine interface {
	Predict(query model.RoadObservation) (model.PredictionResult, error)
}

// KNNEngine binds Predict to a reference dataset and a neighbour count.
type KNNEngine struct {
	dataset []model.RoadObservation
	k       int
}

// NewKNNEngine returns an engine over dataset. The dataset slice is copied so
// later changes by the caller cannot alter predictions.
func NewKNNEngine(dataset []model.RoadObservation, k int) (*KNNEngine, error) {
	if len(dataset) == 0 {
		return nil, fmt.Errorf("%w: reference dataset is empty", ErrInvalidInput)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidInput, k)
	}
	ds := make([]model.RoadObservation, len(dataset))
	copy(ds, dataset)
	return &KNNEngine{dataset: ds, k: k}, nil
}

// Predict runs Predict against the engine's dataset.
func (e *KNNEngine) Predict(query model.RoadObservation) (model.PredictionResult, error) {
	return Predict(query, e.dataset, e.k)
}

// K returns the configured neighbour count.
func (e *KNNEngine) K() int { return e.k }

// DatasetSize returns the number of reference observations.
func (e *KNNEngine) DatasetSize() int { return len(e.dataset) }

type neighbour struct {
	obs        model.RoadObservation
	similarity float64
}

// Predict selects the k observations of dataset most similar to query and
// derives a prediction from them. k larger than the dataset is clamped to its
// size. Ties in similarity keep dataset order.
func Predict(query model.RoadObservation, dataset []model.RoadObservation, k int) (model.PredictionResult, error) {
	if len(dataset) == 0 {
		return model.PredictionResult{}, fmt.Errorf("%w: reference dataset is empty", ErrInvalidInput)
	}
	if k <= 0 {
		return model.PredictionResult{}, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidInput, k)
	}
	if !query.FiniteFeatures() {
		return model.PredictionResult{}, fmt.Errorf("%w: query has non-finite attributes", ErrInvalidInput)
	}

	scored := make([]neighbour, len(dataset))
	for i, d := range dataset {
		scored[i] = neighbour{obs: d, similarity: Similarity(query, d)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].similarity > scored[j].similarity
	})
	if k > len(scored) {
		k = len(scored)
	}
	nearest := scored[:k]

	weights := make([]float64, k)
	rates := make([]float64, k)
	repairs := make([]float64, k)
	similar := make([]model.RoadObservation, k)
	for i, n := range nearest {
		weights[i] = n.similarity
		rates[i] = n.obs.DeteriorationRate
		repairs[i] = float64(n.obs.NeedsRepair)
		similar[i] = n.obs
	}

	rate := float64(FallbackDeteriorationRate)
	probability := FallbackRepairProbability
	if floats.Sum(weights) > 0 {
		rate = stat.Mean(rates, weights)
		probability = stat.Mean(repairs, weights)
	}
	rate = math.Max(rate, 0)
	needsRepair := probability > 0.5

	return model.PredictionResult{
		DeteriorationRate: rate,
		RepairProbability: probability,
		NeedsRepair:       needsRepair,
		RiskScore:         RiskScore(query, rate, needsRepair),
		Lifespan:          Lifespan(query, rate, needsRepair),
		SimilarRoads:      similar,
		Similarities:      weights,
	}, nil
}

// RiskScore blends age, time since repair, deterioration rate and the repair
// flag into an integer in [0,100]. Each factor saturates independently.
func RiskScore(query model.RoadObservation, rate float64, needsRepair bool) int {
	ageRisk := math.Min(query.Age/40, 1) * 30
	repairRisk := math.Min(query.TimeSinceRepair/35, 1) * 25
	deteriorationRisk := math.Min(rate/25, 1) * 35
	bonus := 0.0
	if needsRepair {
		bonus = 10
	}
	score := math.Round(ageRisk + repairRisk + deteriorationRisk + bonus)
	return int(clamp(score, 0, 100))
}

// Lifespan estimates the remaining lifespan in years. Roads needing repair
// get at least half a year, other roads at least one.
func Lifespan(query model.RoadObservation, rate float64, needsRepair bool) float64 {
	if needsRepair {
		return math.Max(0.5, 5-rate/15)
	}
	trafficImpact := float64(query.TrafficVolume) * 0.5
	weatherImpact := float64(query.WeatherCondition) * 0.7
	qualityBonus := float64(model.MaxMaterialQuality-query.MaterialQuality) * 0.8
	ageImpact := math.Min(query.Age/20, 1) * 2
	return math.Max(1, 12-trafficImpact-weatherImpact-ageImpact+qualityBonus)
}
