package context

import (
	"context"
	"testing"
)

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-123")

	if got := GetCorrelationID(ctx); got != "req-123" {
		t.Errorf("expected 'req-123', got %q", got)
	}
}

func TestCorrelationID_MissingReturnsEmpty(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Errorf("expected empty correlation ID, got %q", got)
	}
}

func TestUsername_RoundTrip(t *testing.T) {
	ctx := WithUsername(context.Background(), "operator")

	if got := GetUsername(ctx); got != "operator" {
		t.Errorf("expected 'operator', got %q", got)
	}
}

func TestUsername_MissingReturnsEmpty(t *testing.T) {
	if got := GetUsername(context.Background()); got != "" {
		t.Errorf("expected empty username, got %q", got)
	}
}

func TestKeysDoNotCollide(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-123")
	ctx = WithUsername(ctx, "operator")

	if GetCorrelationID(ctx) != "req-123" || GetUsername(ctx) != "operator" {
		t.Error("expected both values to survive on the same context")
	}
}
