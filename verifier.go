package verifier

import (
	"context"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/iden3/go-iden3-predicate/cache"
	"github.com/iden3/go-iden3-predicate/circuits"
	"github.com/iden3/go-iden3-predicate/constants"
	"github.com/iden3/go-iden3-predicate/loaders"
	"github.com/iden3/go-iden3-predicate/predicate"
	"github.com/iden3/go-iden3-predicate/pubsignals"
	"github.com/pkg/errors"
)

// ErrRejected is the only failure an evaluation reports. Whether the
// predicate was false or the input was malformed is not disclosed.
var ErrRejected = errors.New("predicate evaluation rejected")

// ErrRequestNotFound is returned when a request id is unknown or expired
var ErrRequestNotFound = errors.New("verification request not found")

// Request is a predicate verification request issued by a verifier.
type Request struct {
	ID        string          `json:"id"`
	Reason    string          `json:"reason,omitempty"`
	Query     predicate.Query `json:"query"`
	QueryHash *big.Int        `json:"queryHash"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Verifier issues verification requests and evaluates claims against them.
type Verifier struct {
	requests cache.ICache[Request]
	cfg      config
}

// NewVerifier creates a verifier. Defaults: embedded attribute table,
// slog.Default logger, constants.DefaultRequestTTL, no circuit check.
func NewVerifier(opts ...Option) *Verifier {
	cfg := config{
		requestTTL: constants.DefaultRequestTTL,
		cacheSize:  constants.DefaultCacheMaxSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.attributes == nil {
		cfg.attributes = loaders.NewEmbeddedAttributeLoader()
	}
	return &Verifier{
		requests: cache.NewInMemoryCache[Request](cfg.cacheSize, cfg.requestTTL),
		cfg:      cfg,
	}
}

// Close releases the request store.
func (v *Verifier) Close() {
	v.requests.Close()
}

// CreateRequest parses a credential subject request, e.g.
//
//	{"dateOfBirth": {"$gt": 19800101, "$lte": 20050101}}
//
// and stores it under a new id until it is verified or expires.
func (v *Verifier) CreateRequest(ctx context.Context, reason string, credentialSubject map[string]any) (*Request, error) {
	q, err := pubsignals.ParseQuery(ctx, credentialSubject, v.cfg.attributes)
	if err != nil {
		return nil, errors.Wrap(err, "can't parse request query")
	}
	h, err := pubsignals.CalculateQueryHash(q)
	if err != nil {
		return nil, err
	}
	req := Request{
		ID:        uuid.New().String(),
		Reason:    reason,
		Query:     q,
		QueryHash: h,
		CreatedAt: time.Now().UTC(),
	}
	v.requests.Set(req.ID, req)
	v.cfg.logger.DebugContext(ctx, "verification request created",
		"request_id", req.ID, "operations", q.Len(), "query_hash", h.String())
	return &req, nil
}

// Request returns a pending request by id.
func (v *Verifier) Request(id string) (*Request, bool) {
	req, ok := v.requests.Get(id)
	if !ok {
		return nil, false
	}
	return &req, true
}

// Verify evaluates the claim against the pending request with the given id.
// A request is consumed by its first verification.
func (v *Verifier) Verify(ctx context.Context, requestID string, commitments predicate.CommitmentSet, claim predicate.PrivateClaim) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req, ok := v.requests.Get(requestID)
	if !ok {
		return errors.Wrapf(ErrRequestNotFound, "id %s", requestID)
	}
	v.requests.Delete(requestID)

	return v.evaluate(ctx, requestID, req.Query, commitments, claim)
}

// VerifySignals evaluates the claim against public signals encoded as in pubsignals.Signals.
func (v *Verifier) VerifySignals(ctx context.Context, signals []byte, claim predicate.PrivateClaim) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var s pubsignals.Signals
	if err := s.PubSignalsUnmarshal(signals); err != nil {
		v.cfg.logger.DebugContext(ctx, "predicate evaluation rejected", "reason", err)
		return ErrRejected
	}
	return v.evaluate(ctx, "", s.Query, s.Commitments, claim)
}

func (v *Verifier) evaluate(ctx context.Context, requestID string, q predicate.Query, commitments predicate.CommitmentSet, claim predicate.PrivateClaim) error {
	err := predicate.Run(q, commitments, claim)
	if err == nil && v.cfg.circuitCheck {
		err = circuits.CheckSatisfied(q, commitments, claim)
	}
	if err != nil {
		v.cfg.logger.DebugContext(ctx, "predicate evaluation rejected", "request_id", requestID, "reason", err)
		return ErrRejected
	}
	v.cfg.logger.InfoContext(ctx, "predicate evaluation accepted", "request_id", requestID)
	return nil
}

// Evaluate runs a single evaluation and reports only acceptance.
func Evaluate(q predicate.Query, commitments predicate.CommitmentSet, claim predicate.PrivateClaim) error {
	if !predicate.Accept(q, commitments, claim) {
		return ErrRejected
	}
	return nil
}
