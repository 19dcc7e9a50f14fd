// Package infra holds the adapters behind the core interfaces: the zerolog
// logger, Prometheus and InfluxDB metrics sinks and the Paho MQTT publisher.
package infra
