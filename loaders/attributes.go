package loaders

import (
	"encoding/json"
	"os"

	"github.com/iden3/go-iden3-predicate/predicate"
	"github.com/pkg/errors"
)

// ErrAttributeNotFound is returned when attribute name has no code
var ErrAttributeNotFound = errors.New("attribute not found")

// AttributeCodeLoader resolves attribute names to attribute codes
//
//go:generate mockgen -destination=mock/AttributeCodeLoaderMock.go . AttributeCodeLoader
type AttributeCodeLoader interface {
	Resolve(name string) (predicate.AttributeCode, error)
}

// FSAttributeLoader reads a JSON table of attribute codes from filesystem
type FSAttributeLoader struct {
	Path string
}

// Resolve looks name up in the table file
func (f FSAttributeLoader) Resolve(name string) (predicate.AttributeCode, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, err
	}
	table, err := parseTable(data)
	if err != nil {
		return 0, err
	}
	code, ok := table[name]
	if !ok {
		return 0, errors.Wrapf(ErrAttributeNotFound, "'%s'", name)
	}
	return code, nil
}

func parseTable(data []byte) (map[string]predicate.AttributeCode, error) {
	var table map[string]predicate.AttributeCode
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, errors.Wrap(err, "failed to parse attribute table")
	}
	return table, nil
}
