package observability

import (
	"context"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"calcpro"
	"calcpro/internal/handlers"
)

// ErrorReason classifies err for metric attributes and logs.
func ErrorReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, calcpro.ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, calcpro.ErrNotFinite):
		return "not_finite"
	case errors.Is(err, calcpro.ErrUnknownOperator):
		return "unknown_operator"
	case errors.Is(err, calcpro.ErrEmptySequence):
		return "empty_sequence"
	case errors.Is(err, calcpro.ErrOverflow):
		return "overflow"
	default:
		return "invalid_request"
	}
}

// RecordError centralises error handling across all domains: records the error
// on the span, increments the provided error counter, logs with trace context,
// and writes a JSON error HTTP response.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	reason := ErrorReason(err)

	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	span.SetAttributes(attribute.String("error.reason", reason))

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("reason", reason),
	))

	logger.Error(msg,
		zap.String("operation", opName),
		zap.String("reason", reason),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	handlers.WriteError(w, status, msg)
}
