package calcpro

import "fmt"

// Accumulate folds values left to right through op, using the first value as
// the seed. A single value is returned unchanged.
func Accumulate(op Operator, values ...float64) (float64, error) {
	if !op.valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownOperator, op)
	}
	if len(values) == 0 {
		return 0, ErrEmptySequence
	}
	if !isFinite(values[0]) {
		return 0, &StepError{Index: 0, Err: ErrNotFinite}
	}
	acc := values[0]
	for i, v := range values[1:] {
		next, err := Apply(op, acc, v)
		if err != nil {
			return 0, &StepError{Index: i + 1, Err: err}
		}
		acc = next
	}
	return acc, nil
}

// AccumulateAdd returns values[0] + values[1] + ...
func AccumulateAdd(values ...float64) (float64, error) { return Accumulate(OpAdd, values...) }

// AccumulateSub returns values[0] - values[1] - ...
func AccumulateSub(values ...float64) (float64, error) { return Accumulate(OpSub, values...) }

// AccumulateMul returns values[0] * values[1] * ...
func AccumulateMul(values ...float64) (float64, error) { return Accumulate(OpMul, values...) }

// AccumulateDiv returns values[0] / values[1] / ...
func AccumulateDiv(values ...float64) (float64, error) { return Accumulate(OpDiv, values...) }
