package model

import (
	"fmt"
	"math"
)

// Soil type codes. The soil attribute is categorical: codes only compare for
// equality.
const (
	SoilGranular = 0 // sand, gravel
	SoilCohesive = 1 // clay, loam
	SoilSilt     = 2
)

// Traffic volume codes, ordered from lightest to heaviest daily traffic.
const (
	TrafficVeryLow  = 0
	TrafficLow      = 1
	TrafficMedium   = 2
	TrafficHigh     = 3
	TrafficVeryHigh = 4
)

// Weather condition codes, ordered from mildest to most severe exposure.
const (
	WeatherMild     = 0
	WeatherModerate = 1
	WeatherSevere   = 2
)

// Material quality codes. The scoring treats 0 as the best material: the
// lifespan bonus shrinks as the code grows.
const (
	MaterialBest    = 0
	MaterialAverage = 1
	MaterialWorst   = 2
)

// Upper bounds of the coded attributes.
const (
	MaxSoilType         = SoilSilt
	MaxTrafficVolume    = TrafficVeryHigh
	MaxWeatherCondition = WeatherSevere
	MaxMaterialQuality  = MaterialWorst
)

// RoadObservation describes the condition of one road segment.
//
// Age and TimeSinceRepair are stored values, not derived from the years at read
// time. Whoever builds an observation keeps them consistent.
type RoadObservation struct {
	ConstructionYear  int     `json:"constructionYear" yaml:"constructionYear"`
	LastRepairYear    int     `json:"lastRepairYear" yaml:"lastRepairYear"`
	SoilType          int     `json:"soilType" yaml:"soilType"`
	TrafficVolume     int     `json:"trafficVolume" yaml:"trafficVolume"`
	WeatherCondition  int     `json:"weatherCondition" yaml:"weatherCondition"`
	MaterialQuality   int     `json:"materialQuality" yaml:"materialQuality"`
	DeteriorationRate float64 `json:"deteriorationRate" yaml:"deteriorationRate"`
	Age               float64 `json:"age" yaml:"age"`
	TimeSinceRepair   float64 `json:"timeSinceRepair" yaml:"timeSinceRepair"`
	NeedsRepair       int     `json:"needsRepair" yaml:"needsRepair"` // 1 = yes
}

// Finite reports whether every real-valued attribute is a finite number.
func (o RoadObservation) Finite() bool {
	return finite(o.DeteriorationRate) && o.FiniteFeatures()
}

// FiniteFeatures reports whether the real-valued attributes that take part
// in similarity, Age and TimeSinceRepair, are finite.
func (o RoadObservation) FiniteFeatures() bool {
	return finite(o.Age) && finite(o.TimeSinceRepair)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate checks that the coded attributes are inside their domains and that
// the numeric attributes are non-negative and mutually consistent.
func (o RoadObservation) Validate() error {
	if !o.Finite() {
		return fmt.Errorf("non-finite numeric attribute")
	}
	if o.SoilType < 0 || o.SoilType > MaxSoilType {
		return fmt.Errorf("soilType %d out of range [0,%d]", o.SoilType, MaxSoilType)
	}
	if o.TrafficVolume < 0 || o.TrafficVolume > MaxTrafficVolume {
		return fmt.Errorf("trafficVolume %d out of range [0,%d]", o.TrafficVolume, MaxTrafficVolume)
	}
	if o.WeatherCondition < 0 || o.WeatherCondition > MaxWeatherCondition {
		return fmt.Errorf("weatherCondition %d out of range [0,%d]", o.WeatherCondition, MaxWeatherCondition)
	}
	if o.MaterialQuality < 0 || o.MaterialQuality > MaxMaterialQuality {
		return fmt.Errorf("materialQuality %d out of range [0,%d]", o.MaterialQuality, MaxMaterialQuality)
	}
	if o.NeedsRepair != 0 && o.NeedsRepair != 1 {
		return fmt.Errorf("needsRepair must be 0 or 1, got %d", o.NeedsRepair)
	}
	if o.DeteriorationRate < 0 {
		return fmt.Errorf("deteriorationRate must be non-negative")
	}
	if o.Age < 0 || o.TimeSinceRepair < 0 {
		return fmt.Errorf("age and timeSinceRepair must be non-negative")
	}
	if o.TimeSinceRepair > o.Age {
		return fmt.Errorf("timeSinceRepair %.2f exceeds age %.2f", o.TimeSinceRepair, o.Age)
	}
	return nil
}
