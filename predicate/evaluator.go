package predicate

import (
	"github.com/iden3/go-iden3-predicate/commitment"
	"github.com/pkg/errors"
)

// Rule declares which kinds may be applied to an attribute family.
type Rule struct {
	Attribute AttributeCode
	Kinds     []Kind
}

// dispatchTable lists every supported attribute family. The private attribute
// is the left operand and compares as a signed 64-bit integer:
// EQ is attr == value, LEQ is attr <= value, GT is attr > value.
var dispatchTable = []Rule{
	{Attribute: DateOfBirth, Kinds: []Kind{EQ, LEQ, GT}},
}

// Rules returns a copy of the dispatch table.
func Rules() []Rule {
	out := make([]Rule, len(dispatchTable))
	for i, r := range dispatchTable {
		out[i] = Rule{Attribute: r.Attribute, Kinds: append([]Kind(nil), r.Kinds...)}
	}
	return out
}

// EvaluateOperation returns the truth value of op against the claim. Every
// comparison and every dispatch row is computed, then masked by the operation
// kind and attribute.
func EvaluateOperation(op Operation, claim PrivateClaim) (bool, error) {
	attr, err := Select(claim.Attributes[:], int(op.Attribute))
	if err != nil {
		return false, err
	}

	eq := attr == op.Value
	leq := attr <= op.Value
	gt := attr > op.Value

	supported := false
	result := false
	for _, r := range dispatchTable {
		family := r.Attribute == op.Attribute
		for _, k := range r.Kinds {
			hit := family && k == op.Kind
			supported = supported || hit
			result = result || (hit && compare(k, eq, leq, gt))
		}
	}
	if !supported {
		return false, errors.Wrapf(ErrUnsupportedOperation, "kind %v on attribute %d", op.Kind, op.Attribute)
	}
	return result, nil
}

func compare(k Kind, eq, leq, gt bool) bool {
	return (k == EQ && eq) || (k == LEQ && leq) || (k == GT && gt)
}

// VerifyCommitment asserts that the opening reproduces pair.
func VerifyCommitment(o Opening, pair commitment.Pair) error {
	return commitment.Verify(o.Value, o.Randomness, pair)
}
