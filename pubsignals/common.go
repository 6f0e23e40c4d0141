package pubsignals

import (
	"math/big"

	"github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/iden3/go-iden3-predicate/commitment"
	"github.com/iden3/go-iden3-predicate/predicate"
	"github.com/pkg/errors"
)

const spongeFrameSize = 6

// CalculateQueryHash calculates query hash over every slot of the query,
// kinds first, then attribute codes, then values.
func CalculateQueryHash(q predicate.Query) (*big.Int, error) {
	inputs := make([]*big.Int, 0, 3*len(q))
	for _, op := range q {
		inputs = append(inputs, big.NewInt(int64(op.Kind)))
	}
	for _, op := range q {
		inputs = append(inputs, big.NewInt(int64(op.Attribute)))
	}
	for _, op := range q {
		inputs = append(inputs, commitment.ToField(op.Value))
	}
	h, err := poseidon.SpongeHashX(inputs, spongeFrameSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash query")
	}
	return h, nil
}

// CalculateCommitmentsHash calculates hash of the flat commitment set. Empty
// entries hash as zero.
func CalculateCommitmentsHash(set predicate.CommitmentSet) (*big.Int, error) {
	inputs := make([]*big.Int, len(set))
	for i, c := range set {
		inputs[i] = orZero(c)
	}
	h, err := poseidon.SpongeHashX(inputs, spongeFrameSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash commitments")
	}
	return h, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}
