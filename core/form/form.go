// Package form converts road attributes entered by a user into the coded
// attribute space of the reference dataset.
//
// The conversion is a Policy rather than fixed arithmetic: slider scaling,
// clamping, the soil label table and the material code direction are all
// configurable. DefaultPolicy reproduces the mapping the dataset was built
// with.
package form

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kilianp07/roadrisk/core/model"
)

// ErrInvalidForm is returned when the submitted form fails validation.
var ErrInvalidForm = errors.New("invalid form input")

// Input is the raw form submission.
type Input struct {
	RoadName                string  `json:"road_name" validate:"required"`
	RoadAge                 float64 `json:"road_age" validate:"gte=0,lte=30"`
	TrafficVolume           float64 `json:"traffic_volume" validate:"gte=0,lte=100"`
	HeavyVehiclesPercentage float64 `json:"heavy_vehicles_percentage" validate:"gte=0,lte=100"`
	AnnualRainfall          float64 `json:"annual_rainfall" validate:"gte=0,lte=100"`
	TemperatureFluctuation  float64 `json:"temperature_fluctuation" validate:"gte=0,lte=100"`
	SoilType                string  `json:"soil_type"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the input ranges. The road name must not be blank.
func (in Input) Validate() error {
	in.RoadName = strings.TrimSpace(in.RoadName)
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}

// Policy is the data dictionary used to map form values to observation codes.
type Policy struct {
	// TrafficDivisor scales the 0-100 traffic slider; TrafficMax caps the code.
	TrafficDivisor float64 `json:"traffic_divisor"`
	TrafficMax     int     `json:"traffic_max"`
	// WeatherDivisor scales rainfall plus temperature fluctuation.
	WeatherDivisor float64 `json:"weather_divisor"`
	WeatherMax     int     `json:"weather_max"`
	// MaterialDivisor scales the share of light vehicles (100 - heavy %).
	MaterialDivisor float64 `json:"material_divisor"`
	MaterialMax     int     `json:"material_max"`
	// InvertMaterial flips the material code (code = MaterialMax - code).
	InvertMaterial bool `json:"invert_material"`
	// RepairIntervalDivisor estimates the last repair as construction + floor(age / divisor).
	RepairIntervalDivisor float64 `json:"repair_interval_divisor"`
	// SoilCodes maps lower-case soil labels to soil codes.
	SoilCodes       map[string]int `json:"soil_codes"`
	DefaultSoilCode int            `json:"default_soil_code"`
}

// DefaultPolicy returns the mapping used to build the reference dataset.
func DefaultPolicy() Policy {
	return Policy{
		TrafficDivisor:        25,
		TrafficMax:            model.MaxTrafficVolume,
		WeatherDivisor:        70,
		WeatherMax:            model.MaxWeatherCondition,
		MaterialDivisor:       40,
		MaterialMax:           model.MaxMaterialQuality,
		RepairIntervalDivisor: 3,
		SoilCodes: map[string]int{
			"sand":   model.SoilGranular,
			"gravel": model.SoilGranular,
			"clay":   model.SoilCohesive,
			"loam":   model.SoilCohesive,
			"silt":   model.SoilSilt,
		},
		DefaultSoilCode: model.SoilCohesive,
	}
}

// SetDefaults fills zero values from DefaultPolicy.
func (p *Policy) SetDefaults() {
	def := DefaultPolicy()
	if p.TrafficDivisor == 0 {
		p.TrafficDivisor = def.TrafficDivisor
	}
	if p.TrafficMax == 0 {
		p.TrafficMax = def.TrafficMax
	}
	if p.WeatherDivisor == 0 {
		p.WeatherDivisor = def.WeatherDivisor
	}
	if p.WeatherMax == 0 {
		p.WeatherMax = def.WeatherMax
	}
	if p.MaterialDivisor == 0 {
		p.MaterialDivisor = def.MaterialDivisor
	}
	if p.MaterialMax == 0 {
		p.MaterialMax = def.MaterialMax
	}
	if p.RepairIntervalDivisor == 0 {
		p.RepairIntervalDivisor = def.RepairIntervalDivisor
	}
	if len(p.SoilCodes) == 0 {
		p.SoilCodes = def.SoilCodes
		p.DefaultSoilCode = def.DefaultSoilCode
	}
}

// Validate rejects divisors that are not positive and codes outside the
// dataset domains.
func (p Policy) Validate() error {
	for name, d := range map[string]float64{
		"traffic_divisor":         p.TrafficDivisor,
		"weather_divisor":         p.WeatherDivisor,
		"material_divisor":        p.MaterialDivisor,
		"repair_interval_divisor": p.RepairIntervalDivisor,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if p.TrafficMax < 0 || p.TrafficMax > model.MaxTrafficVolume {
		return fmt.Errorf("traffic_max must be within [0,%d]", model.MaxTrafficVolume)
	}
	if p.WeatherMax < 0 || p.WeatherMax > model.MaxWeatherCondition {
		return fmt.Errorf("weather_max must be within [0,%d]", model.MaxWeatherCondition)
	}
	if p.MaterialMax < 0 || p.MaterialMax > model.MaxMaterialQuality {
		return fmt.Errorf("material_max must be within [0,%d]", model.MaxMaterialQuality)
	}
	if p.DefaultSoilCode < 0 || p.DefaultSoilCode > model.MaxSoilType {
		return fmt.Errorf("default_soil_code must be within [0,%d]", model.MaxSoilType)
	}
	for label, code := range p.SoilCodes {
		if code < 0 || code > model.MaxSoilType {
			return fmt.Errorf("soil code for %q must be within [0,%d]", label, model.MaxSoilType)
		}
	}
	return nil
}

// Observation converts in to a query observation. now provides the current
// year. DeteriorationRate and NeedsRepair are left at zero.
func (p Policy) Observation(in Input, now time.Time) (model.RoadObservation, error) {
	if err := in.Validate(); err != nil {
		return model.RoadObservation{}, err
	}
	age := math.Floor(in.RoadAge)
	construction := now.Year() - int(age)
	sinceConstruction := math.Floor(age / p.RepairIntervalDivisor)

	material := code((100-in.HeavyVehiclesPercentage)/p.MaterialDivisor, p.MaterialMax)
	if p.InvertMaterial {
		material = p.MaterialMax - material
	}
	return model.RoadObservation{
		ConstructionYear: construction,
		LastRepairYear:   construction + int(sinceConstruction),
		SoilType:         p.soilCode(in.SoilType),
		TrafficVolume:    code(in.TrafficVolume/p.TrafficDivisor, p.TrafficMax),
		WeatherCondition: code((in.AnnualRainfall+in.TemperatureFluctuation)/p.WeatherDivisor, p.WeatherMax),
		MaterialQuality:  material,
		Age:              age,
		TimeSinceRepair:  age - sinceConstruction,
	}, nil
}

func (p Policy) soilCode(label string) int {
	if c, ok := p.SoilCodes[strings.ToLower(strings.TrimSpace(label))]; ok {
		return c
	}
	return p.DefaultSoilCode
}

func code(v float64, max int) int {
	c := int(math.Floor(v))
	if c < 0 {
		return 0
	}
	if c > max {
		return max
	}
	return c
}
