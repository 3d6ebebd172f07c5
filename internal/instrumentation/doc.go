// Package instrumentation provides OpenTelemetry-based observability for
// flycast: metrics, distributed tracing, and audit logging.
//
// # Metrics
//
// Metrics cover the Fireflies API (operation counts and latency), Gemini
// generations, MCP tool invocations, and HTTP requests in serve mode. The
// default exporter is Prometheus, exposed by the metrics server; OTLP and
// stdout exporters are available via configuration.
//
// # Tracing
//
// Tracing is disabled by default and can be enabled with an OTLP or stdout
// exporter. Span helpers keep attribute naming consistent across tools and
// API calls.
//
// # Cardinality
//
// Participant emails never appear as metric labels. Use ExtractUserDomain
// for a low-cardinality domain label and the audit logger for anything that
// needs the full value.
//
// # Configuration
//
// All behavior is driven by environment variables, read by DefaultConfig:
// INSTRUMENTATION_ENABLED, METRICS_EXPORTER, TRACING_EXPORTER,
// OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_TRACES_SAMPLER_ARG and friends.
package instrumentation
