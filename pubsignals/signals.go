package pubsignals

import (
	"encoding/json"
	"math/big"

	"github.com/iden3/go-iden3-predicate/commitment"
	"github.com/iden3/go-iden3-predicate/constants"
	"github.com/iden3/go-iden3-predicate/predicate"
	"github.com/pkg/errors"
)

// SignalsLength is the number of public signals of a predicate evaluation:
// kinds, attributes and values of every query slot followed by the flat
// commitment set.
const SignalsLength = 3*constants.MaxQuerySize + 2*constants.MaxNumOfAttrs

// ErrInvalidSignals is returned when public signals can't be decoded
var ErrInvalidSignals = errors.New("invalid public signals")

// Signals is the public input of a predicate evaluation.
type Signals struct {
	Query       predicate.Query
	Commitments predicate.CommitmentSet
}

// ToStrings encodes the signals as decimal field elements.
func (s Signals) ToStrings() []string {
	out := make([]string, 0, SignalsLength)
	for _, op := range s.Query {
		out = append(out, big.NewInt(int64(op.Kind)).String())
	}
	for _, op := range s.Query {
		out = append(out, big.NewInt(int64(op.Attribute)).String())
	}
	for _, op := range s.Query {
		out = append(out, commitment.ToField(op.Value).String())
	}
	for _, c := range s.Commitments {
		out = append(out, orZero(c).String())
	}
	return out
}

// MarshalJSON encodes the signals as a JSON array of strings.
func (s Signals) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToStrings())
}

// UnmarshalJSON decodes a JSON array of strings.
func (s *Signals) UnmarshalJSON(data []byte) error {
	return s.PubSignalsUnmarshal(data)
}

// PubSignalsUnmarshal unmarshal public signals.
func (s *Signals) PubSignalsUnmarshal(data []byte) error {
	var sVals []string
	if err := json.Unmarshal(data, &sVals); err != nil {
		return err
	}
	if len(sVals) != SignalsLength {
		return errors.Wrapf(ErrInvalidSignals, "expected %d signals, got %d", SignalsLength, len(sVals))
	}
	vals, err := ArrayStringToBigInt(sVals)
	if err != nil {
		return errors.Wrap(ErrInvalidSignals, err.Error())
	}

	var out Signals
	n := constants.MaxQuerySize
	for i := 0; i < n; i++ {
		kind, attr, value := vals[i], vals[n+i], vals[2*n+i]
		if !fitsBits(kind, 4) {
			return errors.Wrapf(ErrInvalidSignals, "kind of slot %d is not a 4-bit code", i)
		}
		if !fitsBits(attr, 8) {
			return errors.Wrapf(ErrInvalidSignals, "attribute of slot %d is not a byte", i)
		}
		v, err := commitment.FromField(value)
		if err != nil {
			return errors.Wrapf(ErrInvalidSignals, "value of slot %d: %v", i, err)
		}
		out.Query[i] = predicate.Operation{
			Kind:      predicate.Kind(kind.Uint64()),
			Attribute: predicate.AttributeCode(attr.Uint64()),
			Value:     v,
		}
	}
	copy(out.Commitments[:], vals[3*n:])

	*s = out
	return nil
}

func fitsBits(v *big.Int, bits int) bool {
	return v.Sign() >= 0 && v.BitLen() <= bits
}
