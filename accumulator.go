package calcpro

import "errors"

// State tells whether an Accumulator has performed an operation yet.
type State int

const (
	// Fresh accumulators have not folded anything. Sub, Mul and Div start
	// from their first operand instead of the zero running value.
	Fresh State = iota
	// Chained accumulators fold every call into the running value.
	Chained
)

func (s State) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "chained"
}

// MaxPrecision is the largest output precision; larger requests are clamped.
const MaxPrecision = 100

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithPrecision rounds Value to places decimal digits. Negative places leave
// the result unrounded; places above MaxPrecision are clamped. Zero rounds to
// an integer; it is not treated as "no precision".
func WithPrecision(places int) Option {
	return func(a *Accumulator) {
		if places < 0 {
			a.hasPrecision = false
			return
		}
		a.precision = min(places, MaxPrecision)
		a.hasPrecision = true
	}
}

// Accumulator keeps a running value across chained operations:
//
//	v, err := calcpro.New(calcpro.WithPrecision(2)).Add(0.1, 0.2).Mul(3).Value()
//
// The first error stops the chain: it is returned by Err and Value, and the
// running value stays at what it was before the failing call.
//
// An Accumulator is not safe for concurrent use.
type Accumulator struct {
	value        float64
	precision    int
	hasPrecision bool
	state        State
	err          error
}

// New returns a Fresh accumulator with a running value of 0.
func New(opts ...Option) *Accumulator {
	a := &Accumulator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add folds the running value and values through addition. Unlike the other
// operations it always includes the running value, which is 0 when Fresh.
func (a *Accumulator) Add(values ...float64) *Accumulator {
	return a.fold(OpAdd, values, true)
}

// Sub subtracts values from the running value, or from values[0] when Fresh.
func (a *Accumulator) Sub(values ...float64) *Accumulator {
	return a.fold(OpSub, values, a.state == Chained)
}

// Mul multiplies the running value by values, or values together when Fresh.
func (a *Accumulator) Mul(values ...float64) *Accumulator {
	return a.fold(OpMul, values, a.state == Chained)
}

// Div divides the running value by values, or values[0] by the rest when Fresh.
func (a *Accumulator) Div(values ...float64) *Accumulator {
	return a.fold(OpDiv, values, a.state == Chained)
}

// Apply folds values through op with the same Fresh/Chained rules as the
// named methods.
func (a *Accumulator) Apply(op Operator, values ...float64) *Accumulator {
	return a.fold(op, values, op == OpAdd || a.state == Chained)
}

func (a *Accumulator) fold(op Operator, values []float64, withRunning bool) *Accumulator {
	if a.err != nil {
		return a
	}
	seq := values
	if withRunning {
		seq = make([]float64, 0, len(values)+1)
		seq = append(seq, a.value)
		seq = append(seq, values...)
	}
	v, err := Accumulate(op, seq...)
	if err != nil {
		var stepErr *StepError
		if withRunning && errors.As(err, &stepErr) {
			err = &StepError{Index: stepErr.Index - 1, Err: stepErr.Err}
		}
		a.err = err
		return a
	}
	a.value = v
	a.state = Chained
	return a
}

// Value returns the running value, rounded with RoundFixed when a precision
// was configured. It does not modify the accumulator.
func (a *Accumulator) Value() (float64, error) {
	if a.err != nil {
		return 0, a.err
	}
	if a.hasPrecision {
		return RoundFixed(a.value, a.precision), nil
	}
	return a.value, nil
}

// Err returns the error that stopped the chain, if any.
func (a *Accumulator) Err() error { return a.err }

// State reports whether the accumulator has folded anything yet.
func (a *Accumulator) State() State { return a.state }

// Precision returns the configured output precision and whether one is set.
func (a *Accumulator) Precision() (int, bool) { return a.precision, a.hasPrecision }

// Reset returns the accumulator to Fresh with a zero running value and no
// error. The precision is kept.
func (a *Accumulator) Reset() *Accumulator {
	a.value = 0
	a.state = Fresh
	a.err = nil
	return a
}
