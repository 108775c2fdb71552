package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/eringen/portfolio/kvstore"
)

var errUnregistered = errors.New("content: entity handle is not registered")

// Repository provides CRUD operations over registered entities. Every value
// is read, decoded, modified in memory and written back whole; there are no
// partial writes.
//
// Mutating operations hold a single mutex for their full read-modify-write so
// that concurrent callers in one process never lose each other's updates.
// Writers in other processes sharing the same storage are not coordinated.
type Repository struct {
	mu    sync.Mutex
	store kvstore.Storage
	now   func() time.Time
}

// New returns a Repository backed by store.
func New(store kvstore.Storage) *Repository {
	return &Repository{store: store, now: time.Now}
}

func (r *Repository) readRaw(key string) (string, bool, error) {
	if key == "" {
		return "", false, errUnregistered
	}
	raw, ok, err := r.store.Read(key)
	if err != nil {
		return "", false, fmt.Errorf("content: read %s: %w", key, err)
	}
	return raw, ok, nil
}

func readJSON[T any](r *Repository, key string) (T, bool, error) {
	var v T
	raw, ok, err := r.readRaw(key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero, false, &DeserializationError{Key: key, Err: err}
	}
	return v, true, nil
}

func (r *Repository) writeJSON(key, op string, v any) error {
	if key == "" {
		return errUnregistered
	}
	b, err := json.Marshal(v)
	if err != nil {
		return &WriteError{Key: key, Op: op, Err: err}
	}
	if err := r.store.Write(key, string(b)); err != nil {
		return &WriteError{Key: key, Op: op, Err: err}
	}
	return nil
}

// Get returns the stored value of a singleton document. ok is false when
// nothing has been saved yet.
func Get[T any](r *Repository, d Document[T]) (T, bool, error) {
	return readJSON[T](r, d.key)
}

// Save replaces the stored value of a singleton document.
func Save[T any](r *Repository, d Document[T], v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeJSON(d.key, "save", v)
}

// GetAll returns the stored sequence. ok is false, and the slice nil, when
// the key is absent; callers choose their own default.
func GetAll[T any](r *Repository, c Collection[T]) ([]T, bool, error) {
	return readJSON[[]T](r, c.key)
}

// SaveAll replaces the whole stored sequence. Ids are written as given.
func SaveAll[T any](r *Repository, c Collection[T], items []T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	return r.writeJSON(c.key, "save", items)
}

// loadItems reads a sequence for modification, treating absent as empty.
func loadItems[T any](r *Repository, c Collection[T]) ([]T, error) {
	if c.id == nil {
		return nil, errUnregistered
	}
	items, _, err := GetAll(r, c)
	return items, err
}

func indexOf[T any](c Collection[T], items []T, id int64) int {
	for i := range items {
		if *c.id(&items[i]) == id {
			return i
		}
	}
	return -1
}

// Find returns the item with the given id.
func Find[T any](r *Repository, c Collection[T], id int64) (T, error) {
	var zero T
	items, err := loadItems(r, c)
	if err != nil {
		return zero, err
	}
	i := indexOf(c, items, id)
	if i < 0 {
		return zero, fmt.Errorf("%s id %d: %w", c.key, id, ErrNotFound)
	}
	return items[i], nil
}

// Add appends item to the sequence and returns it as stored. An item with a
// zero id is assigned the next id for the collection: one past the largest
// existing id (1 for an empty sequence), or for timestamp-keyed collections
// the current time in milliseconds when that is larger. Ids of deleted items
// are never handed out again while a larger id remains. An explicit id that
// is already taken is rejected with ErrDuplicate.
func Add[T any](r *Repository, c Collection[T], item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	items, err := loadItems(r, c)
	if err != nil {
		return zero, err
	}
	if err := assignID(c, items, &item, r.now()); err != nil {
		return zero, err
	}
	items = append(items, item)
	if err := r.writeJSON(c.key, "add", items); err != nil {
		return zero, err
	}
	return item, nil
}

// assignID gives item the id Add would give it after items, or rejects an
// explicit id that items already use. Nothing is written.
func assignID[T any](c Collection[T], items []T, item *T, now time.Time) error {
	id := c.id(item)
	if *id != 0 {
		if indexOf(c, items, *id) >= 0 {
			return fmt.Errorf("%s id %d: %w", c.key, *id, ErrDuplicate)
		}
		return nil
	}
	var maxID int64
	for i := range items {
		maxID = max(maxID, *c.id(&items[i]))
	}
	*id = maxID + 1
	if c.next != nil {
		*id = c.next(maxID, now)
	}
	return nil
}

// Update merges patch into the item with the given id and returns the
// result. patch must encode to a JSON object; each field it carries replaces
// the item's field of the same JSON name and every other field is kept. An id
// field in the patch is ignored.
func Update[T any](r *Repository, c Collection[T], id int64, patch any) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	items, err := loadItems(r, c)
	if err != nil {
		return zero, err
	}
	i := indexOf(c, items, id)
	if i < 0 {
		return zero, fmt.Errorf("%s id %d: %w", c.key, id, ErrNotFound)
	}
	merged, err := mergeFields(items[i], patch)
	if err != nil {
		return zero, &WriteError{Key: c.key, Op: "update", Err: err}
	}
	*c.id(&merged) = id
	items[i] = merged
	if err := r.writeJSON(c.key, "update", items); err != nil {
		return zero, err
	}
	return merged, nil
}

func mergeFields[T any](item T, patch any) (T, error) {
	var zero T
	pb, err := json.Marshal(patch)
	if err != nil {
		return zero, fmt.Errorf("encode patch: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(pb, &fields); err != nil || fields == nil {
		return zero, errors.New("patch is not a JSON object")
	}
	delete(fields, "id")

	ib, err := json.Marshal(item)
	if err != nil {
		return zero, fmt.Errorf("encode item: %w", err)
	}
	var base map[string]json.RawMessage
	if err := json.Unmarshal(ib, &base); err != nil {
		return zero, fmt.Errorf("item is not a JSON object: %w", err)
	}
	for k, v := range fields {
		base[k] = v
	}
	mb, err := json.Marshal(base)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(mb, &out); err != nil {
		return zero, fmt.Errorf("apply patch: %w", err)
	}
	return out, nil
}

// Delete removes the item with the given id.
func Delete[T any](r *Repository, c Collection[T], id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := loadItems(r, c)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(items, func(item T) bool {
		return *c.id(&item) == id
	})
	if len(kept) == len(items) {
		return fmt.Errorf("%s id %d: %w", c.key, id, ErrNotFound)
	}
	if kept == nil {
		kept = []T{}
	}
	return r.writeJSON(c.key, "delete", kept)
}

// Remove deletes the stored value of any entity, returning it to absent.
func Remove(r *Repository, e Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := e.Key()
	if key == "" {
		return errUnregistered
	}
	if err := r.store.Remove(key); err != nil {
		return &WriteError{Key: key, Op: "remove", Err: err}
	}
	return nil
}
