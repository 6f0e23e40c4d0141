package predicate

import "github.com/pkg/errors"

// Accumulator is the AND fold of operation results. Once false it stays false.
type Accumulator struct {
	value bool
}

// NewAccumulator returns an accumulator holding true.
func NewAccumulator() *Accumulator {
	return &Accumulator{value: true}
}

// Fold ANDs b into the accumulator.
func (a *Accumulator) Fold(b bool) {
	a.value = a.value && b
}

// Value returns the accumulated result.
func (a *Accumulator) Value() bool {
	return a.value
}

type runnerState uint8

const (
	running runnerState = iota
	halted
)

// Run evaluates the query over the claim. It returns nil only when every
// operation before the first STOP holds and every attribute those operations
// reference opens its public commitment. Any other outcome is an error:
// ErrOutOfBounds, ErrCommitmentMismatch and ErrUnsupportedOperation abort
// the evaluation, ErrPredicateFalse is returned when the final assertion fails.
//
// All slots of the query are visited; after STOP they only re-assert the
// accumulator.
func Run(q Query, commitments CommitmentSet, claim PrivateClaim) error {
	acc := NewAccumulator()
	state := running

	for i := range q {
		op := q[i]
		if state == halted || op.Kind == STOP {
			state = halted
			acc.Fold(true)
			continue
		}

		ok, err := step(op, commitments, claim)
		if err != nil {
			return errors.Wrapf(err, "operation %d", i)
		}
		acc.Fold(ok)
	}

	if !acc.Value() {
		return ErrPredicateFalse
	}
	return nil
}

// Accept is the binary form of Run.
func Accept(q Query, commitments CommitmentSet, claim PrivateClaim) bool {
	return Run(q, commitments, claim) == nil
}

func step(op Operation, commitments CommitmentSet, claim PrivateClaim) (bool, error) {
	opening, err := claim.Open(int(op.Attribute))
	if err != nil {
		return false, err
	}
	pair, err := commitments.Pair(int(op.Attribute))
	if err != nil {
		return false, err
	}
	if err = VerifyCommitment(opening, pair); err != nil {
		return false, err
	}
	return EvaluateOperation(op, claim)
}
