package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPrediction forwards the event to all sinks, returning the first error
// encountered after every sink has been called.
func (m *MultiSink) RecordPrediction(ev PredictionEvent) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RecordDatasetSize forwards the size to sinks implementing DatasetSizeRecorder.
func (m *MultiSink) RecordDatasetSize(size int) error {
	var first error
	for _, s := range m.Sinks {
		if rec, ok := s.(DatasetSizeRecorder); ok {
			if err := rec.RecordDatasetSize(size); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
