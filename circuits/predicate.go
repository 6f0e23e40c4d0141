// Package circuits expresses predicate evaluation as an R1CS circuit over
// BN254. The circuit enforces the same rules as predicate.Run: fixed number of
// slots, oblivious selection, commitment opening, masked dispatch and an AND
// accumulator that must end at 1.
package circuits

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
	"github.com/consensys/gnark/std/selector"
	"github.com/iden3/go-iden3-predicate/commitment"
	"github.com/iden3/go-iden3-predicate/constants"
	"github.com/iden3/go-iden3-predicate/predicate"
)

// signOffset maps a signed 64-bit value to [0, 2^64) so that field
// comparison orders it as a signed integer.
var signOffset = new(big.Int).Lsh(big.NewInt(1), 63)

// AndPredicate is the circuit. Query and commitments are public, the claim is secret.
type AndPredicate struct {
	Kinds       [constants.MaxQuerySize]frontend.Variable      `gnark:",public"`
	Attributes  [constants.MaxQuerySize]frontend.Variable      `gnark:",public"`
	Values      [constants.MaxQuerySize]frontend.Variable      `gnark:",public"`
	Commitments [2 * constants.MaxNumOfAttrs]frontend.Variable `gnark:",public"`

	ClaimAttributes [constants.MaxNumOfAttrs]frontend.Variable
	ClaimRandomness [constants.MaxNumOfAttrs]frontend.Variable
}

// Define declares the circuit constraints.
func (c *AndPredicate) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	var xs, ys [constants.MaxNumOfAttrs]frontend.Variable
	for i := range xs {
		xs[i] = c.Commitments[2*i]
		ys[i] = c.Commitments[2*i+1]
	}

	rules := predicate.Rules()
	acc := frontend.Variable(1)
	halted := frontend.Variable(0)

	for i := 0; i < constants.MaxQuerySize; i++ {
		isStop := api.IsZero(api.Sub(c.Kinds[i], int(predicate.STOP)))
		halted = api.Or(halted, isStop)
		active := api.Sub(1, halted)

		// halted slots are zeroed so that nothing after STOP is constrained
		kind := api.Mul(active, c.Kinds[i])
		attr := api.Mul(active, c.Attributes[i])
		api.ToBinary(kind, 4)
		api.ToBinary(attr, 8)

		// Mux fails when attr does not address one of the attribute slots
		value := selector.Mux(api, attr, c.ClaimAttributes[:]...)
		randomness := selector.Mux(api, attr, c.ClaimRandomness[:]...)
		cx := selector.Mux(api, attr, xs[:]...)
		cy := selector.Mux(api, attr, ys[:]...)

		h.Reset()
		h.Write(commitment.LaneX, value, randomness)
		x := h.Sum()
		h.Reset()
		h.Write(commitment.LaneY, value, randomness)
		y := h.Sum()
		api.AssertIsEqual(api.Mul(active, api.Sub(x, cx)), 0)
		api.AssertIsEqual(api.Mul(active, api.Sub(y, cy)), 0)

		lhs := api.Mul(active, api.Add(value, signOffset))
		rhs := api.Mul(active, api.Add(c.Values[i], signOffset))
		api.ToBinary(lhs, 64)
		api.ToBinary(rhs, 64)

		gt := api.IsZero(api.Sub(api.Cmp(lhs, rhs), 1))
		comparisons := map[predicate.Kind]frontend.Variable{
			predicate.EQ:  api.IsZero(api.Sub(lhs, rhs)),
			predicate.LEQ: api.Sub(1, gt),
			predicate.GT:  gt,
		}

		supported := frontend.Variable(0)
		result := frontend.Variable(0)
		for _, r := range rules {
			family := api.IsZero(api.Sub(attr, int(r.Attribute)))
			for _, k := range r.Kinds {
				hit := api.Mul(family, api.IsZero(api.Sub(kind, int(k))))
				supported = api.Add(supported, hit)
				result = api.Add(result, api.Mul(hit, comparisons[k]))
			}
		}
		api.AssertIsEqual(api.Mul(active, api.Sub(1, supported)), 0)

		acc = api.Mul(acc, api.Select(active, result, 1))
	}

	api.AssertIsEqual(acc, 1)
	return nil
}

// NewAssignment builds a full witness assignment for the circuit.
func NewAssignment(q predicate.Query, commitments predicate.CommitmentSet, claim predicate.PrivateClaim) *AndPredicate {
	a := &AndPredicate{}
	for i, op := range q {
		a.Kinds[i] = int(op.Kind)
		a.Attributes[i] = int(op.Attribute)
		a.Values[i] = commitment.ToField(op.Value)
	}
	for i, c := range commitments {
		a.Commitments[i] = orZero(c)
	}
	for i := range claim.Attributes {
		a.ClaimAttributes[i] = commitment.ToField(claim.Attributes[i])
		a.ClaimRandomness[i] = orZero(claim.Randomness[i])
	}
	return a
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}
