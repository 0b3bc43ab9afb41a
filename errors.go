package calcpro

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when a divisor is exactly zero.
	ErrDivisionByZero = errors.New("division by zero is not allowed")

	// ErrNotFinite is returned for NaN or infinite operands.
	ErrNotFinite = errors.New("operand is not a finite number")

	// ErrUnknownOperator is returned for an Operator outside OpAdd..OpDiv.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrEmptySequence is returned when a fold has nothing to fold.
	ErrEmptySequence = errors.New("no operands to accumulate")

	// ErrOverflow is returned when a result of finite operands does not fit
	// in a float64.
	ErrOverflow = errors.New("result overflows float64")
)

// OpError records the operator and operands of a failed operation.
type OpError struct {
	Op  Operator
	A   float64
	B   float64
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("calcpro: %g %s %g: %v", e.A, e.Op, e.B, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// StepError reports the position of a failing operand within a fold.
// Index is the position in the values passed to the failing call, so for
// Accumulate index 1 is the first operand folded into the seed, and for an
// Accumulator it never counts the running value.
type StepError struct {
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
