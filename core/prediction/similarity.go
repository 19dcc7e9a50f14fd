package prediction

import (
	"math"

	"github.com/kilianp07/roadrisk/core/model"
)

// Attribute weights of the similarity metric. They sum to 1.
const (
	WeightSoilType         = 0.15
	WeightTrafficVolume    = 0.25
	WeightWeatherCondition = 0.20
	WeightMaterialQuality  = 0.15
	WeightAge              = 0.15
	WeightTimeSinceRepair  = 0.10
)

// Normalisation ranges for the ordinal and continuous attributes.
const (
	trafficRange         = 4
	weatherRange         = 2
	materialRange        = 2
	ageRange             = 45
	timeSinceRepairRange = 40
)

// Similarity returns a score in [0,1] where 1 means identical on every
// compared attribute. Only soil type, traffic volume, weather condition,
// material quality, age and time since repair take part.
func Similarity(a, b model.RoadObservation) float64 {
	soil := 0.0
	if a.SoilType != b.SoilType {
		soil = 1
	}
	traffic := absInt(a.TrafficVolume-b.TrafficVolume) / trafficRange
	weather := absInt(a.WeatherCondition-b.WeatherCondition) / weatherRange
	material := absInt(a.MaterialQuality-b.MaterialQuality) / materialRange
	age := math.Min(math.Abs(a.Age-b.Age)/ageRange, 1)
	repair := math.Min(math.Abs(a.TimeSinceRepair-b.TimeSinceRepair)/timeSinceRepairRange, 1)

	distance := WeightSoilType*soil +
		WeightTrafficVolume*traffic +
		WeightWeatherCondition*weather +
		WeightMaterialQuality*material +
		WeightAge*age +
		WeightTimeSinceRepair*repair
	return clamp(1-distance, 0, 1)
}

func absInt(v int) float64 {
	if v < 0 {
		v = -v
	}
	return float64(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
