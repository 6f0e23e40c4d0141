package predicate

import (
	"fmt"

	"github.com/iden3/go-iden3-predicate/constants"
	"github.com/pkg/errors"
)

// Kind is a 4-bit operation code.
type Kind uint8

// Operation kinds
const (
	EQ   Kind = 0
	LEQ  Kind = 1
	GT   Kind = 2
	STOP Kind = 15
)

var kindNames = map[Kind]string{
	EQ:   "EQ",
	LEQ:  "LEQ",
	GT:   "GT",
	STOP: "STOP",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// AttributeCode is the index of an attribute in a claim and in a commitment set.
type AttributeCode uint8

// Attribute codes
const (
	DateOfBirth AttributeCode = 0
)

// Operation is a single comparison of a public value against a private attribute.
type Operation struct {
	Kind      Kind          `json:"kind"`
	Attribute AttributeCode `json:"attribute"`
	Value     int64         `json:"value"`
}

// Stop returns the sentinel operation.
func Stop() Operation {
	return Operation{Kind: STOP}
}

// Query is a fixed-size list of operations evaluated in order.
// Slots after the first STOP are ignored.
type Query [constants.MaxQuerySize]Operation

// NewQuery builds a query from ops and pads every remaining slot with STOP.
func NewQuery(ops ...Operation) (Query, error) {
	var q Query
	if len(ops) > len(q) {
		return q, errors.Wrapf(ErrQueryTooLong, "got %d operations, max %d", len(ops), len(q))
	}
	for i := range q {
		q[i] = Stop()
	}
	copy(q[:], ops)
	return q, nil
}

// Len returns the number of operations before the first STOP.
func (q Query) Len() int {
	n := 0
	halted := false
	for i := range q {
		halted = halted || q[i].Kind == STOP
		if !halted {
			n++
		}
	}
	return n
}

// Operations returns the logical operations of the query, without the sentinel.
func (q Query) Operations() []Operation {
	out := make([]Operation, q.Len())
	copy(out, q[:len(out)])
	return out
}
