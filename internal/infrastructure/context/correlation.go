package context

import "context"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	usernameKey      contextKey = "session_username"
)

// WithCorrelationID adds a correlation ID to the context. The correlation
// ID tracks a request from the inbound HTTP call through the upstream
// invoicing API calls and the audit record.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// GetCorrelationID retrieves the correlation ID from the context.
// Returns an empty string if no correlation ID is present.
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// WithUsername stores the authenticated operator username on the context.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsername retrieves the authenticated operator username, or the empty
// string when the request is unauthenticated.
func GetUsername(ctx context.Context) string {
	if name, ok := ctx.Value(usernameKey).(string); ok {
		return name
	}
	return ""
}
