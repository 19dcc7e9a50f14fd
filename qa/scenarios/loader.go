package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/roadrisk/core/dataset"
	"github.com/kilianp07/roadrisk/core/model"
)

// Expected lists the checks applied to a prediction. Nil fields are not
// checked.
type Expected struct {
	Error             bool     `yaml:"error,omitempty"`
	DeteriorationRate *float64 `yaml:"deterioration_rate,omitempty"`
	RepairProbability *float64 `yaml:"repair_probability,omitempty"`
	NeedsRepair       *bool    `yaml:"needs_repair,omitempty"`
	RiskScore         *int     `yaml:"risk_score,omitempty"`
	MinRiskScore      *int     `yaml:"min_risk_score,omitempty"`
	MaxRiskScore      *int     `yaml:"max_risk_score,omitempty"`
	Lifespan          *float64 `yaml:"lifespan,omitempty"`
	Priority          string   `yaml:"priority,omitempty"`
	Neighbours        *int     `yaml:"neighbours,omitempty"`
}

// Scenario is a prediction regression case.
type Scenario struct {
	Name           string                  `yaml:"name"`
	Description    string                  `yaml:"description,omitempty"`
	K              int                     `yaml:"k"`
	DefaultDataset bool                    `yaml:"default_dataset,omitempty"`
	Dataset        []model.RoadObservation `yaml:"dataset,omitempty"`
	Query          model.RoadObservation   `yaml:"query"`
	Expected       Expected                `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario name is required", path)
	}
	return &sc, nil
}

// References returns the dataset the scenario runs against.
func (sc *Scenario) References() ([]model.RoadObservation, error) {
	if sc.DefaultDataset {
		return dataset.Default()
	}
	return sc.Dataset, nil
}
