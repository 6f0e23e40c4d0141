// Package commitment implements the hiding and binding commitment used to
// publish attribute values. A commitment to (value, randomness) is a pair of
// BN254 scalar field elements, each one a MiMC digest over a lane tag, the
// value and the randomness:
//
//	X = MiMC(0, value, randomness)
//	Y = MiMC(1, value, randomness)
//
// The same construction is computed inside the circuits package, so a pair
// produced here opens in-circuit as well.
package commitment

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/pkg/errors"
)

const (
	LaneX uint64 = 0
	LaneY uint64 = 1
)

// ErrMismatch is returned when a (value, randomness) pair does not reproduce
// the commitment it is checked against.
var ErrMismatch = errors.New("commitment does not open to the claimed value")

// ErrRandomnessOutOfField is returned when randomness is nil or not a
// canonical field element.
var ErrRandomnessOutOfField = errors.New("randomness is not a canonical field element")

// ErrNotInt64 is returned when a field element does not encode a signed 64-bit value.
var ErrNotInt64 = errors.New("field element is not a signed 64-bit value")

// Pair is a public commitment to one attribute.
type Pair struct {
	X *big.Int `json:"x"`
	Y *big.Int `json:"y"`
}

// Equal reports whether both components are set and equal.
func (p Pair) Equal(o Pair) bool {
	if p.X == nil || p.Y == nil || o.X == nil || o.Y == nil {
		return false
	}
	return p.X.Cmp(o.X) == 0 && p.Y.Cmp(o.Y) == 0
}

// Commit computes the commitment pair for value under randomness.
func Commit(value int64, randomness *big.Int) (Pair, error) {
	if !inField(randomness) {
		return Pair{}, ErrRandomnessOutOfField
	}
	x, err := lane(LaneX, value, randomness)
	if err != nil {
		return Pair{}, err
	}
	y, err := lane(LaneY, value, randomness)
	if err != nil {
		return Pair{}, err
	}
	return Pair{X: x, Y: y}, nil
}

// Verify asserts that pair was formed over (value, randomness).
func Verify(value int64, randomness *big.Int, pair Pair) error {
	expected, err := Commit(value, randomness)
	if err != nil {
		return errors.Wrap(ErrMismatch, err.Error())
	}
	if !expected.Equal(pair) {
		return ErrMismatch
	}
	return nil
}

// RandomBlinding returns a uniformly random field element to be used as
// commitment randomness.
func RandomBlinding() (*big.Int, error) {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return nil, errors.Wrap(err, "failed to sample randomness")
	}
	return e.BigInt(new(big.Int)), nil
}

// ToField maps a signed value to its canonical field representation:
// negative values become p - |v|.
func ToField(v int64) *big.Int {
	var e fr.Element
	e.SetInt64(v)
	return e.BigInt(new(big.Int))
}

// FromField is the inverse of ToField. Plain signed integers that already fit
// into int64 are accepted as is.
func FromField(x *big.Int) (int64, error) {
	if x == nil {
		return 0, ErrNotInt64
	}
	if x.IsInt64() {
		return x.Int64(), nil
	}
	if !inField(x) {
		return 0, ErrNotInt64
	}
	neg := new(big.Int).Sub(x, fr.Modulus())
	if !neg.IsInt64() {
		return 0, ErrNotInt64
	}
	return neg.Int64(), nil
}

func lane(tag uint64, value int64, randomness *big.Int) (*big.Int, error) {
	var t, v, r fr.Element
	t.SetUint64(tag)
	v.SetInt64(value)
	r.SetBigInt(randomness)

	h := mimc.NewMiMC()
	for _, e := range []fr.Element{t, v, r} {
		b := e.Bytes()
		if _, err := h.Write(b[:]); err != nil {
			return nil, errors.Wrap(err, "failed to hash commitment input")
		}
	}
	return new(big.Int).SetBytes(h.Sum(nil)), nil
}

func inField(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(fr.Modulus()) < 0
}
