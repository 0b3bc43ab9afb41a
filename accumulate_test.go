package calcpro

import (
	"errors"
	"math"
	"testing"
)

func TestAccumulate(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(...float64) (float64, error)
		values []float64
		want   float64
	}{
		{name: "add three", fn: AccumulateAdd, values: []float64{0.1, 0.2, 0.3}, want: 0.6},
		{name: "sub three", fn: AccumulateSub, values: []float64{1, 0.1, 0.2}, want: 0.7},
		{name: "mul three", fn: AccumulateMul, values: []float64{0.1, 0.2, 10}, want: 0.2},
		{name: "div three", fn: AccumulateDiv, values: []float64{1, 0.2, 0.5}, want: 10},
		{name: "single value", fn: AccumulateDiv, values: []float64{7.25}, want: 7.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(tc.values...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAccumulateErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if _, err := AccumulateAdd(); !errors.Is(err, ErrEmptySequence) {
			t.Fatalf("expected ErrEmptySequence, got %v", err)
		}
	})

	t.Run("division by zero reports step", func(t *testing.T) {
		_, err := AccumulateDiv(10, 2, 0, 4)
		if !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("expected ErrDivisionByZero, got %v", err)
		}
		var stepErr *StepError
		if !errors.As(err, &stepErr) {
			t.Fatalf("expected *StepError, got %T", err)
		}
		if stepErr.Index != 2 {
			t.Fatalf("expected failing index 2, got %d", stepErr.Index)
		}
	})

	t.Run("non-finite seed", func(t *testing.T) {
		if _, err := Accumulate(OpAdd, math.NaN()); !errors.Is(err, ErrNotFinite) {
			t.Fatalf("expected ErrNotFinite, got %v", err)
		}
	})
}

func TestAccumulateRejectsUnknownOperator(t *testing.T) {
	for _, values := range [][]float64{{5}, {5, 2}, nil} {
		if _, err := Accumulate(Operator(9), values...); !errors.Is(err, ErrUnknownOperator) {
			t.Fatalf("Accumulate(Operator(9), %v): expected ErrUnknownOperator, got %v", values, err)
		}
	}
}

func TestAccumulateOverflow(t *testing.T) {
	_, err := AccumulateAdd(1.7e308, 1.7e308)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Index != 1 {
		t.Fatalf("expected failing index 1, got %v", err)
	}
}
