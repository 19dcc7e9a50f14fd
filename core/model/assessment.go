package model

import (
	"math"
	"time"
)

// MaxReportedNeighbours caps the similar roads carried by an Assessment.
const MaxReportedNeighbours = 5

// Assessment is a prediction prepared for consumers: rounded for display and
// labelled with a maintenance priority.
type Assessment struct {
	ID                string            `json:"id"`
	RoadName          string            `json:"road_name"`
	Timestamp         time.Time         `json:"timestamp"`
	RiskScore         int               `json:"risk_score"`
	DeteriorationRate float64           `json:"deterioration_rate"`
	Lifespan          float64           `json:"lifespan"`
	NeedsRepair       bool              `json:"needs_repair"`
	Priority          Priority          `json:"maintenance_priority"`
	SimilarRoads      []RoadObservation `json:"similar_roads"`
	Query             RoadObservation   `json:"query"`
	ComputeTime       time.Duration     `json:"compute_time_ns"`
}

// NewAssessment builds the consumer view of res. The deterioration rate is
// rounded to two decimals, the lifespan to one, and at most
// MaxReportedNeighbours similar roads are kept.
func NewAssessment(id, roadName string, query RoadObservation, res PredictionResult, ts time.Time) Assessment {
	n := len(res.SimilarRoads)
	if n > MaxReportedNeighbours {
		n = MaxReportedNeighbours
	}
	similar := make([]RoadObservation, n)
	copy(similar, res.SimilarRoads[:n])
	return Assessment{
		ID:                id,
		RoadName:          roadName,
		Timestamp:         ts,
		RiskScore:         res.RiskScore,
		DeteriorationRate: roundTo(res.DeteriorationRate, 2),
		Lifespan:          roundTo(res.Lifespan, 1),
		NeedsRepair:       res.NeedsRepair,
		Priority:          PriorityFor(res.RiskScore),
		SimilarRoads:      similar,
		Query:             query,
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
