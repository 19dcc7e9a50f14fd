// Package metrics defines the sinks recording prediction activity. Sinks
// like PromSink and InfluxSink live in infra/metrics and register themselves
// with the factory so they can be selected from configuration. Several
// configured sinks are combined with a MultiSink.
package metrics
