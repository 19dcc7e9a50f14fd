package model

// PredictionResult is the output of the k-NN engine.
type PredictionResult struct {
	// DeteriorationRate is the similarity-weighted neighbour rate, never negative.
	DeteriorationRate float64 `json:"deteriorationRate"`
	// RepairProbability is the similarity-weighted share of neighbours needing repair.
	RepairProbability float64 `json:"repairProbability"`
	NeedsRepair       bool    `json:"needsRepair"`
	// RiskScore is a composite index in [0,100].
	RiskScore int `json:"riskScore"`
	// Lifespan is the estimated remaining lifespan in years.
	Lifespan float64 `json:"lifespan"`
	// SimilarRoads holds the k nearest observations, most similar first.
	SimilarRoads []RoadObservation `json:"similarRoads"`
	// Similarities[i] is the similarity of SimilarRoads[i] to the query.
	Similarities []float64 `json:"similarities"`
}
