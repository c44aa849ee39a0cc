package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), "test-service", "1.0.0", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider == nil {
		t.Fatal("expected provider to be non-nil")
	}

	// A disabled provider hands out a nil recorder; *Metrics methods are
	// nil-safe, so callers record into it unconditionally.
	m := provider.Metrics()
	if m != nil {
		t.Error("expected nil metrics recorder when disabled")
	}
	m.RecordTask(context.Background(), ResultCreated)
	m.RecordDeleted(context.Background())
	m.RecordError(context.Background(), "create")
	m.RecordPassDuration(context.Background(), 1.5)

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("expected no error on shutdown, got %v", err)
	}
}

func TestNewProvider_Enabled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, "test-service", "1.0.0", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if provider.Metrics() == nil {
		t.Fatal("expected metrics recorder to be non-nil")
	}
}

func TestProvider_ShutdownTwice(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, "test-service", "1.0.0", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("expected no error on first shutdown, got %v", err)
	}
	// Second shutdown should not panic; the SDK reports the provider as
	// already stopped, which is acceptable here.
	_ = provider.Shutdown(ctx)
}
