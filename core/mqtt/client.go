package mqtt

import (
	"context"

	"github.com/kilianp07/roadrisk/core/model"
)

// Publisher broadcasts assessments to MQTT subscribers such as dashboards.
type Publisher interface {
	// PublishAssessment sends a as the latest assessment for its road and
	// for the service as a whole.
	PublishAssessment(ctx context.Context, a model.Assessment) error
}
