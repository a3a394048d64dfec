package logger

import (
	"context"
	"log/slog"
	"time"
)

type ContextKey string

const (
	RequestIDKey    ContextKey = "request_id"
	CardPositionKey ContextKey = "card_position"
	OperationKey    ContextKey = "operation"
)

type ContextLogger struct {
	logger *slog.Logger
}

func NewContextLogger(logger *slog.Logger) *ContextLogger {
	if logger == nil {
		logger = Logger
	}
	return &ContextLogger{logger: logger}
}

// WithCardPosition returns a context that tags log lines with the feed position.
func WithCardPosition(ctx context.Context, position int) context.Context {
	return context.WithValue(ctx, CardPositionKey, position)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

// WithContext adds context values to log entries
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	args := make([]any, 0, 6)

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		args = append(args, "request_id", requestID)
	}

	if position, ok := ctx.Value(CardPositionKey).(int); ok {
		args = append(args, "card_position", position)
	}

	if operation, ok := ctx.Value(OperationKey).(string); ok {
		args = append(args, "operation", operation)
	}

	return cl.logger.With(args...)
}

func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, duration time.Duration) {
	cl.WithContext(ctx).Debug("operation completed",
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	)
}

func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	cl.WithContext(ctx).Error("operation failed",
		"operation", operation,
		"error", err,
	)
}
