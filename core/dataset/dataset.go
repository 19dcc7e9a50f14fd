// Package dataset provides the reference observations the prediction engine
// compares queries against. The order of the observations is significant:
// similarity ties are broken by position, so loaders keep file order.
package dataset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/roadrisk/core/model"
)

// ErrInvalidDataset is returned when a dataset is empty or holds a malformed observation.
var ErrInvalidDataset = errors.New("invalid reference dataset")

//go:embed roads.json
var embedded []byte

// Default returns a fresh copy of the built-in sample dataset.
func Default() ([]model.RoadObservation, error) {
	return Parse(embedded, ".json")
}

// Load reads a dataset from a JSON or YAML file. The file holds a list of
// observations using the same field names as the JSON encoding of
// model.RoadObservation.
func Load(path string) ([]model.RoadObservation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes and validates a dataset. ext selects the format.
func Parse(data []byte, ext string) ([]model.RoadObservation, error) {
	var obs []model.RoadObservation
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &obs); err != nil {
			return nil, fmt.Errorf("decode dataset: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &obs); err != nil {
			return nil, fmt.Errorf("decode dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", ext)
	}
	if err := Validate(obs); err != nil {
		return nil, err
	}
	return obs, nil
}

// Validate checks that obs is non-empty and every observation is well formed.
func Validate(obs []model.RoadObservation) error {
	if len(obs) == 0 {
		return fmt.Errorf("%w: no observations", ErrInvalidDataset)
	}
	for i, o := range obs {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrInvalidDataset, i, err)
		}
		if o.LastRepairYear != 0 && o.LastRepairYear < o.ConstructionYear {
			return fmt.Errorf("%w: entry %d: repaired in %d before construction in %d",
				ErrInvalidDataset, i, o.LastRepairYear, o.ConstructionYear)
		}
	}
	return nil
}
