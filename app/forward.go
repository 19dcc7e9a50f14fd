package app

import (
	"context"
	"sync"

	"github.com/kilianp07/roadrisk/core/model"
	coremqtt "github.com/kilianp07/roadrisk/core/mqtt"
	"github.com/kilianp07/roadrisk/infra/logger"
)

// publishQueue holds the newest unpublished assessment per road, in the
// order roads were last assessed. Enqueuing never blocks, and while the
// publisher is slow a road's older assessment is replaced by its newer one,
// so every road topic and the latest topic end on the newest value.
type publishQueue struct {
	mu      sync.Mutex
	order   []string
	pending map[string]model.Assessment
	wake    chan struct{}
	active  bool
}

func newPublishQueue() *publishQueue {
	return &publishQueue{pending: make(map[string]model.Assessment), wake: make(chan struct{}, 1)}
}

// RecordAssessment enqueues a for publication. It is a no-op while no
// publisher is running.
func (q *publishQueue) RecordAssessment(_ context.Context, a model.Assessment) error {
	q.mu.Lock()
	if !q.active {
		q.mu.Unlock()
		return nil
	}
	if _, ok := q.pending[a.RoadName]; ok {
		for i, r := range q.order {
			if r == a.RoadName {
				q.order = append(q.order[:i], q.order[i+1:]...)
				break
			}
		}
	}
	q.order = append(q.order, a.RoadName)
	q.pending[a.RoadName] = a
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

func (q *publishQueue) drain() []model.Assessment {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.Assessment, 0, len(q.order))
	for _, r := range q.order {
		out = append(out, q.pending[r])
	}
	q.order = q.order[:0]
	clear(q.pending)
	return out
}

func (q *publishQueue) setActive(v bool) {
	q.mu.Lock()
	q.active = v
	q.mu.Unlock()
}

// run publishes queued assessments until ctx is cancelled.
func (q *publishQueue) run(ctx context.Context, pub coremqtt.Publisher, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	q.setActive(true)
	go func() {
		defer close(done)
		defer q.setActive(false)
		for {
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
			}
			for _, a := range q.drain() {
				if err := pub.PublishAssessment(ctx, a); err != nil {
					log.Errorf("publish %s: %v", a.ID, err)
				}
			}
		}
	}()
	return done
}
