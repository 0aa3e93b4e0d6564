// Package document holds the field update semantics and snapshot fan-out
// shared by the document store backends.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/dtroode/storefront-server/internal/model"
)

var (
	ErrNotArray    = errors.New("field is not an array")
	ErrBadUpdate   = errors.New("malformed field update")
	ErrInvalidPath = errors.New("invalid collection or id")
)

// Normalize converts v into its decoded JSON form so values compare by content.
func Normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return out, nil
}

// NormalizeFields normalizes every field value.
func NormalizeFields(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		n, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

// Equal reports whether a and b encode to the same canonical JSON.
// encoding/json sorts map keys, so field order does not matter.
func Equal(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// Apply returns fields with updates applied. fields is not modified.
func Apply(fields map[string]any, updates []model.FieldUpdate) (map[string]any, error) {
	out := maps.Clone(fields)
	if out == nil {
		out = map[string]any{}
	}

	for _, u := range updates {
		if u.Field == "" {
			return nil, fmt.Errorf("%w: empty field name", ErrBadUpdate)
		}
		values := make([]any, 0, len(u.Values))
		for _, v := range u.Values {
			n, err := Normalize(v)
			if err != nil {
				return nil, err
			}
			values = append(values, n)
		}

		switch u.Op {
		case model.OpSet:
			if len(values) != 1 {
				return nil, fmt.Errorf("%w: set %s needs one value", ErrBadUpdate, u.Field)
			}
			out[u.Field] = values[0]

		case model.OpArrayUnion:
			arr, err := arrayField(out, u.Field)
			if err != nil {
				return nil, err
			}
			for _, v := range values {
				if !contains(arr, v) {
					arr = append(arr, v)
				}
			}
			out[u.Field] = arr

		case model.OpArrayRemove:
			arr, err := arrayField(out, u.Field)
			if err != nil {
				return nil, err
			}
			kept := make([]any, 0, len(arr))
			for _, el := range arr {
				if !contains(values, el) {
					kept = append(kept, el)
				}
			}
			out[u.Field] = kept

		default:
			return nil, fmt.Errorf("%w: op %d", ErrBadUpdate, u.Op)
		}
	}

	return out, nil
}

// ValidatePath rejects empty collection or id segments.
func ValidatePath(collection, id string) error {
	if collection == "" || id == "" {
		return fmt.Errorf("%w: %q/%q", ErrInvalidPath, collection, id)
	}
	return nil
}

func arrayField(fields map[string]any, name string) ([]any, error) {
	v, ok := fields[name]
	if !ok || v == nil {
		return []any{}, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotArray, name)
	}
	return append([]any(nil), arr...), nil
}

func contains(arr []any, v any) bool {
	for _, el := range arr {
		if Equal(el, v) {
			return true
		}
	}
	return false
}
