package pubsignals

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/iden3/go-circuits/v2"
	"github.com/iden3/go-iden3-predicate/predicate"
	"github.com/pkg/errors"
)

// ErrUnsupportedOperator is returned for iden3 query operators that have no predicate kind
var ErrUnsupportedOperator = errors.New("query operator is not supported")

// ErrInvalidValue is returned when an operator value is not a signed 64-bit integer
var ErrInvalidValue = errors.New("operator value is not a signed 64-bit integer")

// operatorKinds maps iden3 query operators to predicate kinds. The credential
// attribute is the left operand in both.
var operatorKinds = map[int]predicate.Kind{
	circuits.EQ:  predicate.EQ,
	circuits.LTE: predicate.LEQ,
	circuits.GT:  predicate.GT,
}

// PropertyQuery struct
type PropertyQuery struct {
	FieldName     string
	Operator      int
	OperatorValue any
}

// AttributeResolver resolves an attribute name to its code
type AttributeResolver interface {
	Resolve(name string) (predicate.AttributeCode, error)
}

// ParseCredentialSubject parses a credential subject request like
//
//	{"dateOfBirth": {"$gt": 19800101, "$lte": 20050101}}
//
// into property queries. Fields and operators are sorted so the same request
// always produces the same query.
func ParseCredentialSubject(_ context.Context, credentialSubject map[string]any) ([]PropertyQuery, error) {
	out := []PropertyQuery{}

	fields := make([]string, 0, len(credentialSubject))
	for fieldName := range credentialSubject {
		fields = append(fields, fieldName)
	}
	sort.Strings(fields)

	for _, fieldName := range fields {
		fieldReq, ok := credentialSubject[fieldName].(map[string]any)
		if !ok {
			return nil, errors.New("failed cast type map[string]interface")
		}
		if len(fieldReq) == 0 {
			return nil, errors.Errorf("selective disclosure of '%s' is not supported", fieldName)
		}

		operators := make([]string, 0, len(fieldReq))
		for operatorName := range fieldReq {
			operators = append(operators, operatorName)
		}
		sort.Strings(operators)

		for _, operatorName := range operators {
			operator, exists := circuits.QueryOperators[operatorName]
			if !exists {
				return nil, errors.Wrapf(ErrUnsupportedOperator, "unknown operator '%s'", operatorName)
			}
			if _, ok := operatorKinds[operator]; !ok {
				return nil, errors.Wrapf(ErrUnsupportedOperator, "operator '%s'", operatorName)
			}
			out = append(out, PropertyQuery{
				FieldName:     fieldName,
				Operator:      operator,
				OperatorValue: fieldReq[operatorName],
			})
		}
	}
	return out, nil
}

// BuildQuery converts property queries into a predicate query.
func BuildQuery(_ context.Context, properties []PropertyQuery, resolver AttributeResolver) (predicate.Query, error) {
	ops := make([]predicate.Operation, 0, len(properties))
	for _, p := range properties {
		kind, ok := operatorKinds[p.Operator]
		if !ok {
			return predicate.Query{}, errors.Wrapf(ErrUnsupportedOperator, "operator %d", p.Operator)
		}
		code, err := resolver.Resolve(p.FieldName)
		if err != nil {
			return predicate.Query{}, errors.Wrapf(err, "can't resolve attribute '%s'", p.FieldName)
		}
		value, err := toInt64(p.OperatorValue)
		if err != nil {
			return predicate.Query{}, errors.Wrapf(err, "field '%s'", p.FieldName)
		}
		ops = append(ops, predicate.Operation{Kind: kind, Attribute: code, Value: value})
	}
	return predicate.NewQuery(ops...)
}

// ParseQuery parses a credential subject request straight into a predicate query.
func ParseQuery(ctx context.Context, credentialSubject map[string]any, resolver AttributeResolver) (predicate.Query, error) {
	properties, err := ParseCredentialSubject(ctx, credentialSubject)
	if err != nil {
		return predicate.Query{}, err
	}
	return BuildQuery(ctx, properties, resolver)
}

func toInt64(v any) (int64, error) {
	switch value := v.(type) {
	case int:
		return int64(value), nil
	case int64:
		return value, nil
	case json.Number:
		n, err := value.Int64()
		if err != nil {
			return 0, errors.Wrap(ErrInvalidValue, err.Error())
		}
		return n, nil
	case float64:
		if value != math.Trunc(value) || value < math.MinInt64 || value >= math.MaxInt64 {
			return 0, errors.Wrapf(ErrInvalidValue, "%v", value)
		}
		return int64(value), nil
	case string:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, errors.Wrap(ErrInvalidValue, err.Error())
		}
		return n, nil
	default:
		return 0, errors.Wrapf(ErrInvalidValue, "unsupported values type %T", v)
	}
}
