package assessment

import (
	"github.com/kilianp07/roadrisk/core/model"
	"github.com/kilianp07/roadrisk/internal/eventbus"
)

// Store hands the latest assessment from producers to readers. The last
// published assessment wins; subscribers are pushed every new one.
type Store struct {
	bus *eventbus.TypedBus[model.Assessment]
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{bus: eventbus.NewTyped[model.Assessment]()}
}

// Publish makes a the latest assessment and notifies subscribers.
func (s *Store) Publish(a model.Assessment) { s.bus.Publish(a) }

// Latest returns the most recent assessment, if any.
func (s *Store) Latest() (model.Assessment, bool) { return s.bus.Latest() }

// Subscribe returns a channel receiving the current assessment, if any, then
// every subsequent one.
func (s *Store) Subscribe() <-chan model.Assessment { return s.bus.Subscribe() }

// Unsubscribe releases a channel obtained from Subscribe.
func (s *Store) Unsubscribe(ch <-chan model.Assessment) { s.bus.Unsubscribe(ch) }

// Close closes all subscriber channels.
func (s *Store) Close() { s.bus.Close() }
