// Package predictlog keeps a history of published assessments.
package predictlog

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/roadrisk/core/model"
)

// Record captures one assessment.
type Record struct {
	ID         string           `json:"id"`
	Timestamp  time.Time        `json:"timestamp"`
	RoadName   string           `json:"road_name"`
	Assessment model.Assessment `json:"assessment"`
}

// NewRecord wraps a for storage.
func NewRecord(a model.Assessment) Record {
	return Record{ID: a.ID, Timestamp: a.Timestamp, RoadName: a.RoadName, Assessment: a}
}

// Recorder appends every assessment it receives to Store.
type Recorder struct {
	Store LogStore
}

// RecordAssessment appends a to the log.
func (r Recorder) RecordAssessment(ctx context.Context, a model.Assessment) error {
	if r.Store == nil {
		return nil
	}
	return r.Store.Append(ctx, NewRecord(a))
}

// Query defines filters for retrieving records. Zero values match everything.
type Query struct {
	Start    time.Time
	End      time.Time
	RoadName string
	Limit    int
}

func (q Query) match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.RoadName != "" && r.RoadName != q.RoadName {
		return false
	}
	return true
}

// LogStore persists Records and supports querying. Query returns records in
// append order.
type LogStore interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// Config selects the log store backend.
type Config struct {
	// Backend selects the log store type: "jsonl", "sqlite" or "none".
	Backend string `json:"backend"`
	// Path is the file location of the log store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		switch c.Backend {
		case "sqlite":
			c.Path = "predictions.db"
		default:
			c.Path = "predictions.jsonl"
		}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Backend {
	case "jsonl", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("path is required")
		}
	case "none":
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	return nil
}

// Open creates the store selected by cfg. The "none" backend returns a nil
// store.
func Open(cfg Config) (LogStore, error) {
	switch cfg.Backend {
	case "jsonl":
		return NewJSONLStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown backend %s", cfg.Backend)
	}
}

func applyLimit(res []Record, limit int) []Record {
	if limit > 0 && len(res) > limit {
		return res[len(res)-limit:]
	}
	return res
}
