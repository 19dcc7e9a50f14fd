package form

import (
	"errors"
	"testing"
	"time"

	"github.com/kilianp07/roadrisk/core/model"
)

var now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestDefaultPolicyObservation(t *testing.T) {
	p := DefaultPolicy()
	in := Input{
		RoadName:                "A7",
		RoadAge:                 5,
		TrafficVolume:           50,
		HeavyVehiclesPercentage: 20,
		AnnualRainfall:          30,
		TemperatureFluctuation:  40,
		SoilType:                "clay",
	}
	obs, err := p.Observation(in, now)
	if err != nil {
		t.Fatalf("observation: %v", err)
	}
	want := model.RoadObservation{
		ConstructionYear: 2020,
		LastRepairYear:   2021,
		SoilType:         model.SoilCohesive,
		TrafficVolume:    2,
		WeatherCondition: 1,
		MaterialQuality:  2,
		Age:              5,
		TimeSinceRepair:  4,
	}
	if obs != want {
		t.Fatalf("expected %#v got %#v", want, obs)
	}
}

func TestObservationClampsCodes(t *testing.T) {
	p := DefaultPolicy()
	in := Input{RoadName: "x", RoadAge: 30, TrafficVolume: 100, HeavyVehiclesPercentage: 0, AnnualRainfall: 100, TemperatureFluctuation: 100, SoilType: "SILT"}
	obs, err := p.Observation(in, now)
	if err != nil {
		t.Fatalf("observation: %v", err)
	}
	if obs.TrafficVolume != 4 || obs.WeatherCondition != 2 || obs.MaterialQuality != 2 || obs.SoilType != model.SoilSilt {
		t.Fatalf("codes not clamped: %#v", obs)
	}
	if obs.Age != 30 || obs.TimeSinceRepair != 20 || obs.LastRepairYear-obs.ConstructionYear != 10 {
		t.Fatalf("repair estimate wrong: %#v", obs)
	}
}

func TestObservationSoilLabels(t *testing.T) {
	p := DefaultPolicy()
	cases := map[string]int{"sand": 0, "gravel": 0, "clay": 1, "loam": 1, "silt": 2, "peat": 1, "": 1}
	for label, want := range cases {
		obs, err := p.Observation(Input{RoadName: "r", SoilType: label}, now)
		if err != nil {
			t.Fatalf("%s: %v", label, err)
		}
		if obs.SoilType != want {
			t.Fatalf("%s: expected %d got %d", label, want, obs.SoilType)
		}
	}
}

func TestInvertMaterial(t *testing.T) {
	p := DefaultPolicy()
	p.InvertMaterial = true
	obs, err := p.Observation(Input{RoadName: "r", HeavyVehiclesPercentage: 90}, now)
	if err != nil {
		t.Fatalf("observation: %v", err)
	}
	if obs.MaterialQuality != 2 {
		t.Fatalf("expected inverted code 2 got %d", obs.MaterialQuality)
	}
}

func TestInputValidation(t *testing.T) {
	bad := []Input{
		{RoadName: "   "},
		{RoadName: ""},
		{RoadName: "r", RoadAge: 31},
		{RoadName: "r", TrafficVolume: -1},
		{RoadName: "r", HeavyVehiclesPercentage: 101},
		{RoadName: "r", AnnualRainfall: 150},
		{RoadName: "r", TemperatureFluctuation: -3},
	}
	for i, in := range bad {
		err := in.Validate()
		if !errors.Is(err, ErrInvalidForm) {
			t.Fatalf("case %d: expected ErrInvalidForm got %v", i, err)
		}
		if _, err := DefaultPolicy().Observation(in, now); err == nil {
			t.Fatalf("case %d: observation accepted invalid input", i)
		}
	}
}

func TestPolicyDefaultsAndValidate(t *testing.T) {
	var p Policy
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if p.TrafficDivisor != 25 || p.SoilCodes["silt"] != 2 {
		t.Fatalf("defaults not applied: %#v", p)
	}
	p.WeatherDivisor = -1
	if err := p.Validate(); err == nil {
		t.Fatalf("expected divisor error")
	}
	p = DefaultPolicy()
	p.SoilCodes = map[string]int{"rock": 9}
	if err := p.Validate(); err == nil {
		t.Fatalf("expected soil code error")
	}
	p = DefaultPolicy()
	p.TrafficMax = 9
	if err := p.Validate(); err == nil {
		t.Fatalf("expected traffic max error")
	}
}
