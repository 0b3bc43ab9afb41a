package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"calcpro"
	"calcpro/internal/handlers"
	"calcpro/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// errTooManyValues rejects requests above MaxOperands.
var errTooManyValues = errors.New("too many values")

// ---------------------------------------------------------------------------
// Handlers: binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func Add(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, calcpro.OpAdd)
}

// Subtract handles POST /calculator/subtract
func Subtract(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, calcpro.OpSub)
}

// Multiply handles POST /calculator/multiply
func Multiply(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, calcpro.OpMul)
}

// Divide handles POST /calculator/divide. A zero divisor answers 400.
func Divide(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, calcpro.OpDiv)
}

// handleBinaryOp is the shared implementation for all binary calculator operations.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, op calcpro.Operator) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := op.Name()

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(ctx, span, logger, opName, "invalid request body", err, w)
		return
	}

	if !finite(req.A, req.B) {
		fail(ctx, span, logger, opName, "invalid numeric input", fmt.Errorf("a=%g b=%g: %w", req.A, req.B, calcpro.ErrNotFinite), w)
		return
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", req.A),
		attribute.Float64("calculator.operand.b", req.B),
	)

	start := time.Now()
	result, err := calcpro.Apply(op, req.A, req.B)
	elapsed := sinceMillis(start)

	if err != nil {
		fail(ctx, span, logger, opName, clientMessage(err), err, w)
		return
	}

	recordSuccess(ctx, span, opName, result, elapsed, 2)

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         req.A,
		B:         req.B,
		Result:    result,
	})
}

// ---------------------------------------------------------------------------
// Handler: fold over a list of values
// ---------------------------------------------------------------------------

// Accumulate handles POST /calculator/accumulate/{op}: a left fold of the
// request values with the first value as the seed.
func Accumulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opParam := chi.URLParam(r, "op")

	ctx, span := tracer.Start(ctx, "calculator.accumulate",
		trace.WithAttributes(
			attribute.String("calculator.operation", opParam),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	op, err := calcpro.ParseOperator(opParam)
	if err != nil {
		fail(ctx, span, logger, "accumulate", err.Error(), err, w)
		return
	}
	opName := op.Name()

	var req AccumulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(ctx, span, logger, opName, "invalid request body", err, w)
		return
	}
	if err := checkOperands(len(req.Values)); err != nil {
		fail(ctx, span, logger, opName, clientMessage(err), err, w)
		return
	}

	span.SetAttributes(attribute.Int("calculator.operands", len(req.Values)))

	start := time.Now()
	result, err := calcpro.Accumulate(op, req.Values...)
	elapsed := sinceMillis(start)

	if err != nil {
		fail(ctx, span, logger, opName, clientMessage(err), err, w)
		return
	}

	recordSuccess(ctx, span, opName, result, elapsed, len(req.Values))

	logger.Info("accumulation completed",
		zap.String("operation", opName),
		zap.Int("operands", len(req.Values)),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, AccumulateResponse{
		Operation: opName,
		Values:    req.Values,
		Result:    result,
	})
}

// ---------------------------------------------------------------------------
// Handler: chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. The steps run through one
// calcpro.Accumulator, so the first step starts from its own operands and
// later steps fold into the running value. Every step gets a child span.
func Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(ctx, span, logger, "chain", "invalid request body", err, w)
		return
	}

	if len(req.Steps) == 0 {
		fail(ctx, span, logger, "chain", "no steps provided", fmt.Errorf("steps array is empty"), w)
		return
	}

	total := 0
	for _, step := range req.Steps {
		total += len(step.Values)
	}
	if limit := MaxOperands(); total > limit {
		err := fmt.Errorf("%w: %d values, limit is %d", errTooManyValues, total, limit)
		fail(ctx, span, logger, "chain", clientMessage(err), err, w)
		return
	}

	precision := DefaultPrecision()
	if req.Precision != nil {
		precision = *req.Precision
	}
	if precision > calcpro.MaxPrecision {
		fail(ctx, span, logger, "chain", fmt.Sprintf("precision must not exceed %d", calcpro.MaxPrecision),
			fmt.Errorf("precision %d", precision), w)
		return
	}

	acc := calcpro.New(calcpro.WithPrecision(precision))

	span.SetAttributes(
		attribute.Int("chain.steps_count", len(req.Steps)),
		attribute.Int("chain.precision", precision),
	)

	logger.Info("starting chained calculation",
		zap.Int("steps", len(req.Steps)),
		zap.Int("precision", precision),
		zap.String("request_id", requestID),
	)

	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.Int("chain.step.operands", len(step.Values)),
				attribute.String("chain.step.state", acc.State().String()),
			),
		)

		op, err := calcpro.ParseOperator(step.Op)
		if err != nil {
			stepFailed(stepSpan, err)
			fail(ctx, span, logger, "chain", fmt.Sprintf("step %d: %v", i, err), err, w)
			return
		}

		stepStart := time.Now()
		err = acc.Apply(op, step.Values...).Err()
		stepElapsed := sinceMillis(stepStart)

		if err != nil {
			stepFailed(stepSpan, err)
			fail(ctx, span, logger, op.Name(), fmt.Sprintf("step %d: %s", i, clientMessage(err)), err, w)
			return
		}

		running, _ := acc.Value()

		attrs := metric.WithAttributes(attribute.String("operation", op.Name()))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.Float64("result", running),
		))
		stepSpan.SetAttributes(attribute.Float64("chain.step.result", running))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", op.Name()),
			zap.Float64s("values", step.Values),
			zap.Float64("result", running),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:     op.Name(),
			Values: step.Values,
			Result: running,
		})
	}

	result, _ := acc.Value()

	resultGauge.Record(ctx, result, metric.WithAttributes(attribute.String("operation", "chain")))
	operandCount.Record(ctx, int64(total), metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", result),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("result", result),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	resp := ChainResponse{
		Steps:  results,
		Result: result,
	}
	if places, ok := acc.Precision(); ok {
		resp.Precision = &places
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// fail records err through observability.RecordError and counts division by
// zero on the Prometheus counter. Every client error is a 400.
func fail(ctx context.Context, span trace.Span, logger *zap.Logger, opName, msg string, err error, w http.ResponseWriter) {
	if errors.Is(err, calcpro.ErrDivisionByZero) {
		divisionByZero.WithLabelValues(opName).Inc()
	}
	observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, http.StatusBadRequest, w)
}

func stepFailed(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

func recordSuccess(ctx context.Context, span trace.Span, opName string, result, elapsed float64, operands int) {
	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)
	operandCount.Record(ctx, int64(operands), attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")
}

// checkOperands enforces a non-empty request within MaxOperands.
func checkOperands(n int) error {
	if n == 0 {
		return calcpro.ErrEmptySequence
	}
	if limit := MaxOperands(); n > limit {
		return fmt.Errorf("%w: %d values, limit is %d", errTooManyValues, n, limit)
	}
	return nil
}

// clientMessage reduces err to the sentinel it wraps so responses stay short;
// the full error is logged.
func clientMessage(err error) string {
	for _, sentinel := range []error{
		calcpro.ErrDivisionByZero,
		calcpro.ErrNotFinite,
		calcpro.ErrUnknownOperator,
		calcpro.ErrEmptySequence,
		calcpro.ErrOverflow,
		errTooManyValues,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func sinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
