package predicate

import (
	"github.com/iden3/go-iden3-predicate/commitment"
	"github.com/pkg/errors"
)

// ErrOutOfBounds declares that an index resolved to a position outside a fixed array
var ErrOutOfBounds = errors.New("index is out of bounds")

// ErrCommitmentMismatch declares that a claimed value does not open its public commitment
var ErrCommitmentMismatch = commitment.ErrMismatch

// ErrUnsupportedOperation declares that there is no dispatch rule for the kind and attribute of an operation
var ErrUnsupportedOperation = errors.New("operation is not supported")

// ErrPredicateFalse declares that the accumulated predicate did not hold
var ErrPredicateFalse = errors.New("predicate does not hold")

// ErrQueryTooLong declares that more operations were given than a query can hold
var ErrQueryTooLong = errors.New("query exceeds maximum size")
