package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, ctx context.Context) *Provider {
	t.Helper()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return provider
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordHTTPRequest(ctx, "GET", "/mcp", 200, 100*time.Millisecond)
	metrics.RecordHTTPRequest(ctx, "POST", "/mcp", 500, 50*time.Millisecond)
}

func TestMetrics_RecordFirefliesOperation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Should not panic
	metrics.RecordFirefliesOperation(ctx, OperationList, StatusSuccess, 200*time.Millisecond)
	metrics.RecordFirefliesOperation(ctx, OperationGet, StatusError, 500*time.Millisecond)
	metrics.RecordFirefliesOperation(ctx, OperationSearchPage, StatusSuccess, 100*time.Millisecond)
}

func TestMetrics_RecordGeminiGeneration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Should not panic
	metrics.RecordGeminiGeneration(ctx, "gemini-1.5-pro", StatusSuccess, 12*time.Second)
	metrics.RecordGeminiGeneration(ctx, "gemini-pro", StatusError, 3*time.Second)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Should not panic
	metrics.RecordToolInvocation(ctx, "fireflies_list_recent", StatusSuccess, 200*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "fireflies_case_study", StatusError, 30*time.Second)
}

func TestMetrics_RecordToolInvocationWithSubject(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Subject label omitted because detailedLabels defaults to false
	metrics.RecordToolInvocationWithSubject(ctx, "fireflies_search_domain", StatusSuccess, "acme.com", time.Second)
}

func TestMetrics_RecordTranscriptDelivered(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Should not panic
	metrics.RecordTranscriptDelivered(ctx, DeliveryClipboard, 3)
	metrics.RecordTranscriptDelivered(ctx, DeliveryFile, 1)
}

func TestMetrics_UninitializedIsNoop(t *testing.T) {
	ctx := context.Background()
	metrics := &Metrics{}

	// All recorders must tolerate an uninitialized Metrics value
	metrics.RecordHTTPRequest(ctx, "GET", "/", 200, time.Millisecond)
	metrics.RecordFirefliesOperation(ctx, OperationList, StatusSuccess, time.Millisecond)
	metrics.RecordGeminiGeneration(ctx, "gemini-pro", StatusSuccess, time.Millisecond)
	metrics.RecordToolInvocation(ctx, "tool", StatusSuccess, time.Millisecond)
	metrics.RecordToolInvocationWithSubject(ctx, "tool", StatusSuccess, "acme.com", time.Millisecond)
	metrics.RecordTranscriptDelivered(ctx, DeliveryStdout, 1)
}
