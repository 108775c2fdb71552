package content

import "time"

// Document is a handle to a singleton entity stored as one JSON value.
type Document[T any] struct {
	key string
}

// Key returns the storage key.
func (d Document[T]) Key() string { return d.key }

func (Document[T]) entity() {}

// Collection is a handle to an entity stored as a JSON array of records
// that carry a numeric id.
type Collection[T any] struct {
	key  string
	id   func(*T) *int64
	next func(maxID int64, now time.Time) int64
}

// Key returns the storage key.
func (c Collection[T]) Key() string { return c.key }

func (Collection[T]) entity() {}

// ValueList is a handle to an ordered JSON array whose values are their own
// identity.
type ValueList[T comparable] struct {
	key string
}

// Key returns the storage key.
func (l ValueList[T]) Key() string { return l.key }

func (ValueList[T]) entity() {}

// Blob is a handle to an opaque string stored without any JSON encoding.
type Blob struct {
	key string
}

// Key returns the storage key.
func (b Blob) Key() string { return b.key }

func (Blob) entity() {}

// Entity is satisfied by every registered handle and by nothing outside
// this package.
type Entity interface {
	Key() string
	entity()
}

// The registry. Handles have unexported fields, so no other package can
// mint one for a key that is not listed here.
var (
	AboutEntity = Document[About]{key: "portfolioAbout"}

	ProjectsEntity = Collection[Project]{
		key: "portfolioProjects",
		id:  func(p *Project) *int64 { return &p.ID },
	}

	SkillsEntity = ValueList[string]{key: "portfolioSkills"}

	ProfileImageEntity = Blob{key: "portfolioProfileImage"}

	ContactEntity = Document[Contact]{key: "portfolioContact"}

	MessagesEntity = Collection[Message]{
		key:  "portfolio_messages",
		id:   func(m *Message) *int64 { return &m.ID },
		next: timestampID,
	}
)

// timestampID keys messages by arrival time in milliseconds, stepping past
// the largest existing id when two arrive within the same millisecond.
func timestampID(maxID int64, now time.Time) int64 {
	return max(now.UnixMilli(), maxID+1)
}

// Entities lists every registered handle in a stable order.
func Entities() []Entity {
	return []Entity{
		AboutEntity,
		ProjectsEntity,
		SkillsEntity,
		ProfileImageEntity,
		ContactEntity,
		MessagesEntity,
	}
}

// Keys returns the storage key of every registered entity.
func Keys() []string {
	entities := Entities()
	keys := make([]string, len(entities))
	for i, e := range entities {
		keys[i] = e.Key()
	}
	return keys
}
