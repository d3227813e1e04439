package player

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value that may be absent in the source data.
// The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether a value is set.
func (o Optional[T]) Present() bool {
	return o.ok
}

// OrElse returns the value or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
