package services

import (
	"bytes"
	"encoding/json"
)

// Nullable is a JSON field that distinguishes "absent" (Set false) from an
// explicit null (Set true, Valid false).
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Null returns a present-but-null value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Some returns a present, non-null value.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys that
// appear in the document.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr returns the value as a pointer, nil when null or absent.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
