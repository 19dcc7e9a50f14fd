package config

import (
	"fmt"

	"github.com/kilianp07/roadrisk/core/prediction"
)

// EngineConfig configures the k-NN prediction engine.
type EngineConfig struct {
	// K is the number of neighbours averaged by a prediction.
	K int `json:"k"`
	// DatasetPath points to a JSON or YAML reference dataset. Empty uses the
	// embedded dataset.
	DatasetPath string `json:"dataset_path"`
}

// SetDefaults applies sane defaults.
func (c *EngineConfig) SetDefaults() {
	if c.K == 0 {
		c.K = prediction.DefaultK
	}
}

// Validate checks mandatory fields.
func (c EngineConfig) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	return nil
}
