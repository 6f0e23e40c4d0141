package predicate

import (
	"math/big"

	"github.com/iden3/go-iden3-predicate/commitment"
	"github.com/iden3/go-iden3-predicate/constants"
	"github.com/pkg/errors"
)

// PrivateClaim holds the prover's attribute values and the randomness that
// opens the commitment of each of them. Index i is attribute code i.
type PrivateClaim struct {
	Attributes [constants.MaxNumOfAttrs]int64
	Randomness [constants.MaxNumOfAttrs]*big.Int
}

// CommitmentSet is the flat public list of commitment pairs. Pair i is
// stored at positions 2i and 2i+1.
type CommitmentSet [2 * constants.MaxNumOfAttrs]*big.Int

// NewCommitmentSet lays out pairs by attribute code. Missing pairs are left empty.
func NewCommitmentSet(pairs ...commitment.Pair) (CommitmentSet, error) {
	var set CommitmentSet
	if len(pairs) > constants.MaxNumOfAttrs {
		return set, errors.Wrapf(ErrOutOfBounds, "got %d commitments, max %d", len(pairs), constants.MaxNumOfAttrs)
	}
	for i, p := range pairs {
		set[2*i] = p.X
		set[2*i+1] = p.Y
	}
	return set, nil
}

// Pair resolves the commitment pair of attribute code i with an oblivious scan.
func (s CommitmentSet) Pair(i int) (commitment.Pair, error) {
	var xs, ys [constants.MaxNumOfAttrs]*big.Int
	for j := range xs {
		xs[j] = s[2*j]
		ys[j] = s[2*j+1]
	}
	x, err := Select(xs[:], i)
	if err != nil {
		return commitment.Pair{}, err
	}
	y, err := Select(ys[:], i)
	if err != nil {
		return commitment.Pair{}, err
	}
	return commitment.Pair{X: x, Y: y}, nil
}

// Opening is a claimed (value, randomness) pair for a single attribute.
type Opening struct {
	Value      int64
	Randomness *big.Int
}

// Open resolves the value and randomness of attribute code i with an oblivious scan.
func (c PrivateClaim) Open(i int) (Opening, error) {
	value, err := Select(c.Attributes[:], i)
	if err != nil {
		return Opening{}, err
	}
	randomness, err := Select(c.Randomness[:], i)
	if err != nil {
		return Opening{}, err
	}
	return Opening{Value: value, Randomness: randomness}, nil
}

// NewPrivateClaim commits to every value with fresh randomness and returns the
// claim together with the matching public commitment set.
func NewPrivateClaim(values ...int64) (PrivateClaim, CommitmentSet, error) {
	var claim PrivateClaim
	if len(values) > constants.MaxNumOfAttrs {
		return claim, CommitmentSet{}, errors.Wrapf(ErrOutOfBounds, "got %d attributes, max %d", len(values), constants.MaxNumOfAttrs)
	}
	copy(claim.Attributes[:], values)

	var pairs [constants.MaxNumOfAttrs]commitment.Pair
	for i := range claim.Attributes {
		r, err := commitment.RandomBlinding()
		if err != nil {
			return PrivateClaim{}, CommitmentSet{}, err
		}
		claim.Randomness[i] = r
		pairs[i], err = commitment.Commit(claim.Attributes[i], r)
		if err != nil {
			return PrivateClaim{}, CommitmentSet{}, err
		}
	}
	set, err := NewCommitmentSet(pairs[:]...)
	if err != nil {
		return PrivateClaim{}, CommitmentSet{}, err
	}
	return claim, set, nil
}
