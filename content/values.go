package content

import (
	"fmt"
	"slices"
)

// GetValues returns the stored list. ok is false when the key is absent.
func GetValues[T comparable](r *Repository, l ValueList[T]) ([]T, bool, error) {
	return readJSON[[]T](r, l.key)
}

// SaveValues replaces the whole list.
func SaveValues[T comparable](r *Repository, l ValueList[T], values []T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if values == nil {
		values = []T{}
	}
	return r.writeJSON(l.key, "save", values)
}

// AppendValue adds v to the end of the list. A value already present is
// rejected with ErrDuplicate and the stored list is left unchanged.
func AppendValue[T comparable](r *Repository, l ValueList[T], v T) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, _, err := GetValues(r, l)
	if err != nil {
		return nil, err
	}
	if slices.Contains(values, v) {
		return values, fmt.Errorf("%s %v: %w", l.key, v, ErrDuplicate)
	}
	values = append(values, v)
	if err := r.writeJSON(l.key, "add", values); err != nil {
		return nil, err
	}
	return values, nil
}

// RemoveValue deletes v from the list.
func RemoveValue[T comparable](r *Repository, l ValueList[T], v T) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, _, err := GetValues(r, l)
	if err != nil {
		return nil, err
	}
	i := slices.Index(values, v)
	if i < 0 {
		return values, fmt.Errorf("%s %v: %w", l.key, v, ErrNotFound)
	}
	values = slices.Delete(values, i, i+1)
	if err := r.writeJSON(l.key, "delete", values); err != nil {
		return nil, err
	}
	return values, nil
}

// MoveValue takes the value at position from out of the list and inserts it
// at position to, the way a drag-and-drop reorder does.
func MoveValue[T comparable](r *Repository, l ValueList[T], from, to int) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, _, err := GetValues(r, l)
	if err != nil {
		return nil, err
	}
	if from < 0 || from >= len(values) || to < 0 || to >= len(values) {
		return values, fmt.Errorf("%s move %d->%d of %d: %w", l.key, from, to, len(values), ErrOutOfRange)
	}
	if from == to {
		return values, nil
	}
	v := values[from]
	values = slices.Delete(values, from, from+1)
	values = slices.Insert(values, to, v)
	if err := r.writeJSON(l.key, "move", values); err != nil {
		return nil, err
	}
	return values, nil
}
