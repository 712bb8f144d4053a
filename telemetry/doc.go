// SPDX-License-Identifier: MIT

// Package telemetry holds the Prometheus collectors and the OpenTelemetry
// tracer used by the grouping pipeline.
//
// Metrics are opt-in: NewMetrics registers collectors on a caller-supplied
// Registerer, and every recording method is a no-op on a nil *Metrics.
// Spans go through the global otel TracerProvider and are therefore no-ops
// until the host process installs one.
package telemetry
