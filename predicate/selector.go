package predicate

import "github.com/pkg/errors"

// Select returns values[index] without addressing the slice directly: every
// slot is visited and the one whose position matches index is kept, so the
// work done does not depend on index.
func Select[T any](values []T, index int) (T, error) {
	var result T
	found := false
	for i := 0; i < len(values); i++ {
		hit := i == index
		if hit {
			result = values[i]
		}
		found = found || hit
	}
	if !found {
		var zero T
		return zero, errors.Wrapf(ErrOutOfBounds, "index %d, length %d", index, len(values))
	}
	return result, nil
}
