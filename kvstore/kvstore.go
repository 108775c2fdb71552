// Package kvstore provides the persistent key-value port that all portfolio
// content is stored through.
//
// Values are opaque strings. A Storage behaves like a browser's local
// storage: a single Write replaces one key atomically, there are no
// cross-key transactions, and an optional byte quota bounds the total size
// of everything stored.
package kvstore

import "errors"

// ErrQuotaExceeded is returned (wrapped) by Write when storing the value
// would push the store over its configured quota.
var ErrQuotaExceeded = errors.New("kvstore: quota exceeded")

// Storage is the port the content repository is built on.
type Storage interface {
	// Read returns the raw value stored under key. ok is false when the key
	// is absent.
	Read(key string) (value string, ok bool, err error)
	// Write stores value under key, replacing any prior value.
	Write(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Keys returns all present keys in ascending order.
	Keys() ([]string, error)
}

// entrySize is how much of the quota one key/value pair consumes.
func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
