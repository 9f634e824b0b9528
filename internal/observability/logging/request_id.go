package logging

import (
	"context"

	"github.com/google/uuid"
)

const RequestIDHeader = "x-request-id"

type requestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// ValidateAndExtractRequestID returns id when it is a UUID and a fresh one
// otherwise.
func ValidateAndExtractRequestID(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return id
	}
	return uuid.NewString()
}
