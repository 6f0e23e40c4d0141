package predicate

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEvaluateOperation(t *testing.T) {
	var claim PrivateClaim
	claim.Attributes[DateOfBirth] = 19900101

	tests := []struct {
		name  string
		kind  Kind
		value int64
		want  bool
	}{
		{name: "eq equal", kind: EQ, value: 19900101, want: true},
		{name: "eq different", kind: EQ, value: 19900102, want: false},
		{name: "leq greater bound", kind: LEQ, value: 20050101, want: true},
		{name: "leq same bound", kind: LEQ, value: 19900101, want: true},
		{name: "leq smaller bound", kind: LEQ, value: 19900100, want: false},
		{name: "gt smaller bound", kind: GT, value: 19800101, want: true},
		{name: "gt same bound", kind: GT, value: 19900101, want: false},
		{name: "gt greater bound", kind: GT, value: 20000101, want: false},
		{name: "gt negative bound", kind: GT, value: math.MinInt64, want: true},
		{name: "leq max bound", kind: LEQ, value: math.MaxInt64, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateOperation(Operation{Kind: tt.kind, Attribute: DateOfBirth, Value: tt.value}, claim)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateOperationFailsClosed(t *testing.T) {
	var claim PrivateClaim

	for k := 0; k < 16; k++ {
		kind := Kind(k)
		_, err := EvaluateOperation(Operation{Kind: kind, Attribute: DateOfBirth}, claim)
		switch kind {
		case EQ, LEQ, GT:
			require.NoError(t, err, kind.String())
		default:
			require.True(t, errors.Is(err, ErrUnsupportedOperation), kind.String())
		}
	}

	for a := 1; a < 20; a++ {
		_, err := EvaluateOperation(Operation{Kind: EQ, Attribute: AttributeCode(a)}, claim)
		require.True(t, errors.Is(err, ErrUnsupportedOperation), "attribute %d", a)
	}

	_, err := EvaluateOperation(Operation{Kind: EQ, Attribute: 20}, claim)
	require.True(t, errors.Is(err, ErrOutOfBounds))
}
