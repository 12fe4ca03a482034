// Package telemetry provides structured logging, metrics, and tracing for
// the flush engine.
//
// Logging is built on zerolog with component child loggers and context
// embedding. Metrics use a dedicated Prometheus registry exposed through
// Handler. Tracing emits one span per flush pass through OpenTelemetry,
// with a stdout exporter for development; metrics and tracing degrade to
// no-ops when disabled so the engine can carry a nil-cost telemetry handle.
package telemetry
