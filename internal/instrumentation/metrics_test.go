package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestMetrics_Record(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, "test-service", "1.0.0", true)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordTask(ctx, ResultCreated)
	metrics.RecordTask(ctx, ResultUnchanged)
	metrics.RecordDeleted(ctx)
	metrics.RecordError(ctx, "update")
	metrics.RecordPassDuration(ctx, 2.5)
}

func TestMetrics_NilReceiver(t *testing.T) {
	var metrics *Metrics

	// Every method must be a no-op on a nil receiver.
	metrics.RecordTask(context.Background(), ResultSkipped)
	metrics.RecordDeleted(context.Background())
	metrics.RecordError(context.Background(), "archive")
	metrics.RecordPassDuration(context.Background(), 0.1)
}
