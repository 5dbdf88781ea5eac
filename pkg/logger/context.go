package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// RequestIDKey is the context key for the per-operation request ID
	RequestIDKey ContextKey = "request_id"
	// OperationKey is the context key for the menu operation name
	OperationKey ContextKey = "operation"
)

// WithOperation returns a context tagged with a fresh request ID and the
// given operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	ctx = context.WithValue(ctx, RequestIDKey, uuid.New().String())
	return context.WithValue(ctx, OperationKey, operation)
}

// WithContext creates a logger with context fields (request_id, operation)
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	fields := make([]zap.Field, 0, 2)

	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if op := GetOperation(ctx); op != "" {
		fields = append(fields, zap.String("operation", op))
	}

	if len(fields) > 0 {
		return logger.With(fields...)
	}

	return logger
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetOperation extracts the operation name from context
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(OperationKey).(string); ok {
		return op
	}
	return ""
}
