package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrModel     = "model"
	attrTool      = "tool"
	attrDelivery  = "delivery"
	attrSubject   = "subject"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics (serve mode)
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Fireflies API metrics
	firefliesOperationsTotal   metric.Int64Counter
	firefliesOperationDuration metric.Float64Histogram

	// Gemini generation metrics
	geminiGenerationsTotal   metric.Int64Counter
	geminiGenerationDuration metric.Float64Histogram

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// Transcript delivery metrics
	transcriptsDeliveredTotal metric.Int64Counter

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.firefliesOperationsTotal, err = meter.Int64Counter(
		"fireflies_api_operations_total",
		metric.WithDescription("Total number of Fireflies API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fireflies_api_operations_total counter: %w", err)
	}

	m.firefliesOperationDuration, err = meter.Float64Histogram(
		"fireflies_api_operation_duration_seconds",
		metric.WithDescription("Fireflies API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fireflies_api_operation_duration_seconds histogram: %w", err)
	}

	m.geminiGenerationsTotal, err = meter.Int64Counter(
		"gemini_generations_total",
		metric.WithDescription("Total number of Gemini generation requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini_generations_total counter: %w", err)
	}

	m.geminiGenerationDuration, err = meter.Float64Histogram(
		"gemini_generation_duration_seconds",
		metric.WithDescription("Gemini generation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 120.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini_generation_duration_seconds histogram: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	m.transcriptsDeliveredTotal, err = meter.Int64Counter(
		"transcripts_delivered_total",
		metric.WithDescription("Total number of transcripts delivered to an output target"),
		metric.WithUnit("{transcript}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcripts_delivered_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordFirefliesOperation records a Fireflies API operation.
//
// Parameters:
//   - operation: Operation type (list, get, search_page, batch_get)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordFirefliesOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.firefliesOperationsTotal == nil || m.firefliesOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, ServiceFireflies),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.firefliesOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.firefliesOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordGeminiGeneration records a Gemini generation attempt with the model
// that served it.
func (m *Metrics) RecordGeminiGeneration(ctx context.Context, model, status string, duration time.Duration) {
	if m.geminiGenerationsTotal == nil || m.geminiGenerationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrModel, model),
		attribute.String(attrStatus, status),
	}

	m.geminiGenerationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.geminiGenerationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolInvocationWithSubject records an MCP tool invocation including
// the search subject (client domain). The subject label is only added when
// detailedLabels is enabled, since domains are unbounded.
func (m *Metrics) RecordToolInvocationWithSubject(ctx context.Context, toolName, status, subject string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	if m.detailedLabels && subject != "" {
		attrs = append(attrs, attribute.String(attrSubject, subject))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordTranscriptDelivered records a transcript handed to an output target.
// Delivery should be one of: "clipboard", "paste", "stdout", "file", "mcp".
func (m *Metrics) RecordTranscriptDelivered(ctx context.Context, delivery string, count int) {
	if m.transcriptsDeliveredTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrDelivery, delivery),
	}

	m.transcriptsDeliveredTotal.Add(ctx, int64(count), metric.WithAttributes(attrs...))
}
