// Package typed provides type-safe views over the engine's open record
// maps. It converts between raw omap trees and caller-defined structs,
// for callers who want compile-time field access instead of path lookups.
package typed

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/reqdoc/pkg/omap"
)

// Record wraps one requirement record with typed data.
type Record[T any] struct {
	Key  string
	Data T
}

// Decode converts an open record map into a typed struct. Unknown fields
// in the record are simply not visible through T; they stay intact in the
// underlying document.
func Decode[T any](rec *omap.Map) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode record into %T: %w", out, err)
	}
	return out, nil
}

// Encode converts a typed struct back into an ordered record map. Field
// order follows the struct's JSON marshalling order.
func Encode[T any](v T) (*omap.Map, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal typed data: %w", err)
	}
	tree, err := omap.DecodeJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild record tree: %w", err)
	}
	m, ok := tree.(*omap.Map)
	if !ok {
		return nil, fmt.Errorf("typed value %T does not marshal to an object", v)
	}
	return m, nil
}

// DecodeRecord pairs Decode with the record's storage key.
func DecodeRecord[T any](key string, rec *omap.Map) (Record[T], error) {
	data, err := Decode[T](rec)
	if err != nil {
		return Record[T]{}, err
	}
	return Record[T]{Key: key, Data: data}, nil
}
