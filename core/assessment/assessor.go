// Package assessment turns form submissions into published assessments.
package assessment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/roadrisk/core/form"
	"github.com/kilianp07/roadrisk/core/logger"
	"github.com/kilianp07/roadrisk/core/model"
	"github.com/kilianp07/roadrisk/core/prediction"
)

// Recorder receives every assessment on the request path, before it is
// published to the store. Unlike store subscribers, recorders never miss an
// assessment.
type Recorder interface {
	RecordAssessment(ctx context.Context, a model.Assessment) error
}

// Assessor maps form input to a query, runs the prediction engine and
// publishes the resulting assessment.
type Assessor struct {
	engine prediction.PredictionEngine
	policy form.Policy
	store  *Store
	log    logger.Logger

	recorders []Recorder

	now   func() time.Time
	newID func() string
}

// NewAssessor wires an Assessor. store may be nil when results need not be
// published.
func NewAssessor(engine prediction.PredictionEngine, policy form.Policy, store *Store, log logger.Logger) *Assessor {
	return &Assessor{
		engine: engine,
		policy: policy,
		store:  store,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// AddRecorder registers r. It must be called before the first Assess.
func (a *Assessor) AddRecorder(r Recorder) {
	if r != nil {
		a.recorders = append(a.recorders, r)
	}
}

// Assess evaluates in and publishes the assessment. Validation failures wrap
// form.ErrInvalidForm; engine rejections wrap prediction.ErrInvalidInput.
func (a *Assessor) Assess(ctx context.Context, in form.Input) (model.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return model.Assessment{}, err
	}
	start := a.now()
	query, err := a.policy.Observation(in, start)
	if err != nil {
		return model.Assessment{}, err
	}
	res, err := a.engine.Predict(query)
	if err != nil {
		return model.Assessment{}, fmt.Errorf("predict: %w", err)
	}
	out := model.NewAssessment(a.newID(), strings.TrimSpace(in.RoadName), query, res, start.UTC())
	out.ComputeTime = a.now().Sub(start)

	if a.log != nil {
		a.log.Debugw("assessment computed", map[string]any{
			"id":           out.ID,
			"road":         out.RoadName,
			"risk_score":   out.RiskScore,
			"priority":     string(out.Priority),
			"needs_repair": out.NeedsRepair,
		})
	}
	// A client hanging up must not cost the history its record.
	recCtx := context.WithoutCancel(ctx)
	for _, r := range a.recorders {
		if err := r.RecordAssessment(recCtx, out); err != nil && a.log != nil {
			a.log.Errorf("record assessment %s: %v", out.ID, err)
		}
	}
	if a.store != nil {
		a.store.Publish(out)
	}
	return out, nil
}
