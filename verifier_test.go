package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/iden3/go-iden3-predicate/commitment"
	"github.com/iden3/go-iden3-predicate/loaders"
	mock_loaders "github.com/iden3/go-iden3-predicate/loaders/mock"
	"github.com/iden3/go-iden3-predicate/predicate"
	"github.com/iden3/go-iden3-predicate/pubsignals"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func subject(t *testing.T, s string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func newTestVerifier(t *testing.T, opts ...Option) (*Verifier, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	v := NewVerifier(append([]Option{WithLogger(logger)}, opts...)...)
	t.Cleanup(v.Close)
	return v, &buf
}

func TestVerifyScenarios(t *testing.T) {
	tests := []struct {
		name     string
		request  string
		dob      int64
		accepted bool
	}{
		{name: "A", request: `{"dateOfBirth": {"$eq": 1990}}`, dob: 1990, accepted: true},
		{name: "B", request: `{"dateOfBirth": {"$eq": 1990}}`, dob: 1991},
		{name: "C", request: `{"dateOfBirth": {"$gt": 2000}}`, dob: 1990},
		{name: "E", request: `{"dateOfBirth": {"$lte": 2005, "$gt": 1980}}`, dob: 1990, accepted: true},
		{name: "E upper bound", request: `{"dateOfBirth": {"$lte": 1989, "$gt": 1980}}`, dob: 1990},
		{name: "E lower bound", request: `{"dateOfBirth": {"$lte": 2005, "$gt": 1990}}`, dob: 1990},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			v, logs := newTestVerifier(t)

			req, err := v.CreateRequest(ctx, "age check", subject(t, tt.request))
			require.NoError(t, err)
			require.NotEmpty(t, req.ID)
			require.NotNil(t, req.QueryHash)

			claim, set, err := predicate.NewPrivateClaim(tt.dob)
			require.NoError(t, err)

			err = v.Verify(ctx, req.ID, set, claim)
			if tt.accepted {
				require.NoError(t, err)
				require.Contains(t, logs.String(), "predicate evaluation accepted")
				return
			}
			require.Equal(t, ErrRejected, err)
			require.Contains(t, logs.String(), predicate.ErrPredicateFalse.Error())
		})
	}
}

func TestVerifyCommitmentMismatchIsRejected(t *testing.T) {
	ctx := context.Background()
	v, logs := newTestVerifier(t)

	req, err := v.CreateRequest(ctx, "", subject(t, `{"dateOfBirth": {"$eq": 1990}}`))
	require.NoError(t, err)

	claim, set, err := predicate.NewPrivateClaim(1990)
	require.NoError(t, err)
	forged, err := commitment.Commit(1990, big.NewInt(5))
	require.NoError(t, err)
	set[0], set[1] = forged.X, forged.Y

	// D: indistinguishable from a false predicate from the outside
	err = v.Verify(ctx, req.ID, set, claim)
	require.Equal(t, ErrRejected, err)
	require.Contains(t, logs.String(), commitment.ErrMismatch.Error())
}

func TestVerifyRequestLifecycle(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVerifier(t, WithRequestTTL(time.Minute))

	req, err := v.CreateRequest(ctx, "", subject(t, `{"dateOfBirth": {"$gt": 1900}}`))
	require.NoError(t, err)

	stored, ok := v.Request(req.ID)
	require.True(t, ok)
	require.Equal(t, req.Query, stored.Query)
	require.Equal(t, 0, req.QueryHash.Cmp(stored.QueryHash))

	h, err := pubsignals.CalculateQueryHash(req.Query)
	require.NoError(t, err)
	require.Equal(t, 0, h.Cmp(req.QueryHash))

	claim, set, err := predicate.NewPrivateClaim(1990)
	require.NoError(t, err)
	require.NoError(t, v.Verify(ctx, req.ID, set, claim))

	err = v.Verify(ctx, req.ID, set, claim)
	require.True(t, errors.Is(err, ErrRequestNotFound))
	_, ok = v.Request(req.ID)
	require.False(t, ok)

	err = v.Verify(ctx, "unknown", set, claim)
	require.True(t, errors.Is(err, ErrRequestNotFound))
}

func TestVerifyRequestExpires(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVerifier(t, WithRequestTTL(50*time.Millisecond))

	req, err := v.CreateRequest(ctx, "", subject(t, `{"dateOfBirth": {"$gt": 1900}}`))
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	claim, set, err := predicate.NewPrivateClaim(1990)
	require.NoError(t, err)
	err = v.Verify(ctx, req.ID, set, claim)
	require.True(t, errors.Is(err, ErrRequestNotFound))
}

func TestVerifyCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	v, _ := newTestVerifier(t)

	req, err := v.CreateRequest(ctx, "", subject(t, `{"dateOfBirth": {"$gt": 1900}}`))
	require.NoError(t, err)
	cancel()

	claim, set, err := predicate.NewPrivateClaim(1990)
	require.NoError(t, err)
	require.ErrorIs(t, v.Verify(ctx, req.ID, set, claim), context.Canceled)
}

func TestCreateRequestWithCustomAttributes(t *testing.T) {
	ctrl := gomock.NewController(t)
	custom := mock_loaders.NewMockAttributeCodeLoader(ctrl)
	custom.EXPECT().Resolve("documentType").Return(predicate.AttributeCode(2), nil)
	custom.EXPECT().Resolve("dateOfBirth").Return(predicate.AttributeCode(0), loaders.ErrAttributeNotFound)

	v, _ := newTestVerifier(t, WithAttributeLoader(loaders.NewEmbeddedAttributeLoader(loaders.WithAttributeLoader(custom))))

	ctx := context.Background()
	req, err := v.CreateRequest(ctx, "", subject(t, `{"dateOfBirth": {"$gt": 1980}, "documentType": {"$eq": 1}}`))
	require.NoError(t, err)
	require.Equal(t, []predicate.Operation{
		{Kind: predicate.GT, Attribute: predicate.DateOfBirth, Value: 1980},
		{Kind: predicate.EQ, Attribute: 2, Value: 1},
	}, req.Query.Operations())

	// attribute 2 has no dispatch rule, so evaluation fails closed
	claim, set, err := predicate.NewPrivateClaim(1990, 0, 1)
	require.NoError(t, err)
	require.Equal(t, ErrRejected, v.Verify(ctx, req.ID, set, claim))

	_, err = v.CreateRequest(ctx, "", subject(t, `{"dateOfBirth": {"$in": [1]}}`))
	require.True(t, errors.Is(err, pubsignals.ErrUnsupportedOperator))
}

func TestVerifySignals(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVerifier(t)

	q, err := predicate.NewQuery(
		predicate.Operation{Kind: predicate.LEQ, Attribute: predicate.DateOfBirth, Value: 2005},
		predicate.Operation{Kind: predicate.GT, Attribute: predicate.DateOfBirth, Value: 1980},
	)
	require.NoError(t, err)
	claim, set, err := predicate.NewPrivateClaim(1990)
	require.NoError(t, err)

	data, err := json.Marshal(pubsignals.Signals{Query: q, Commitments: set})
	require.NoError(t, err)
	require.NoError(t, v.VerifySignals(ctx, data, claim))

	claim.Attributes[0] = 2006
	require.Equal(t, ErrRejected, v.VerifySignals(ctx, data, claim))

	require.Equal(t, ErrRejected, v.VerifySignals(ctx, []byte(`["1"]`), claim))
}

func TestVerifyWithCircuitCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("compiles the full circuit")
	}
	ctx := context.Background()
	v, _ := newTestVerifier(t, WithCircuitCheck(true))

	req, err := v.CreateRequest(ctx, "", subject(t, `{"dateOfBirth": {"$lte": 2005, "$gt": 1980}}`))
	require.NoError(t, err)
	claim, set, err := predicate.NewPrivateClaim(1990)
	require.NoError(t, err)
	require.NoError(t, v.Verify(ctx, req.ID, set, claim))
}

func TestEvaluate(t *testing.T) {
	q, err := predicate.NewQuery(predicate.Operation{Kind: predicate.EQ, Attribute: predicate.DateOfBirth, Value: 1990})
	require.NoError(t, err)
	claim, set, err := predicate.NewPrivateClaim(1990)
	require.NoError(t, err)
	require.NoError(t, Evaluate(q, set, claim))

	q[0].Attribute = 42
	require.Equal(t, ErrRejected, Evaluate(q, set, claim))
}
