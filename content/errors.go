package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an update or delete names an id or value
	// that is not in the stored sequence.
	ErrNotFound = errors.New("content: item not found")
	// ErrDuplicate is returned when appending a value already present in a
	// value list, or when adding an item whose explicit id is already taken.
	ErrDuplicate = errors.New("content: already exists")
	// ErrOutOfRange is returned when a reorder names a position outside the
	// list.
	ErrOutOfRange = errors.New("content: position out of range")
)

// DeserializationError reports a stored value that exists but does not
// parse into the entity's shape. Callers normally fall back to defaults.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("content: decode %s: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// WriteError reports a failure to persist an entity, either while encoding
// it or in the storage layer (including kvstore.ErrQuotaExceeded).
type WriteError struct {
	Key string
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("content: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsDeserialization reports whether err is, or wraps, a DeserializationError.
func IsDeserialization(err error) bool {
	var de *DeserializationError
	return errors.As(err, &de)
}

// IsWrite reports whether err is, or wraps, a WriteError.
func IsWrite(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
