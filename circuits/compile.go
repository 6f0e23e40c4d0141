package circuits

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/iden3/go-iden3-predicate/predicate"
	"github.com/pkg/errors"
)

// CurveID is the curve the circuit is compiled for.
const CurveID = ecc.BN254

// ErrUnsatisfied is returned when a witness does not satisfy the circuit.
var ErrUnsatisfied = errors.New("witness does not satisfy predicate circuit")

var (
	compileOnce sync.Once
	compiled    constraint.ConstraintSystem
	compileErr  error
)

// Compile compiles the circuit once and returns the cached constraint system.
func Compile() (constraint.ConstraintSystem, error) {
	compileOnce.Do(func() {
		compiled, compileErr = frontend.Compile(CurveID.ScalarField(), r1cs.NewBuilder, &AndPredicate{})
		if compileErr != nil {
			compileErr = errors.Wrap(compileErr, "failed to compile predicate circuit")
		}
	})
	return compiled, compileErr
}

// CheckSatisfied solves the compiled constraint system for the given inputs.
func CheckSatisfied(q predicate.Query, commitments predicate.CommitmentSet, claim predicate.PrivateClaim) error {
	ccs, err := Compile()
	if err != nil {
		return err
	}
	w, err := frontend.NewWitness(NewAssignment(q, commitments, claim), CurveID.ScalarField())
	if err != nil {
		return errors.Wrap(err, "failed to build witness")
	}
	if err = ccs.IsSolved(w); err != nil {
		return errors.Wrap(ErrUnsatisfied, err.Error())
	}
	return nil
}
