package content

// Blob values skip the JSON contract entirely: what is set is exactly what
// is read back. This is the only path for the profile image, whose data URI
// would otherwise be quoted and escaped on every write.

// GetBlob returns the raw stored string. ok is false when absent.
func GetBlob(r *Repository, b Blob) (string, bool, error) {
	return r.readRaw(b.key)
}

// SetBlob stores v verbatim.
func SetBlob(r *Repository, b Blob, v string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.key == "" {
		return errUnregistered
	}
	if err := r.store.Write(b.key, v); err != nil {
		return &WriteError{Key: b.key, Op: "set", Err: err}
	}
	return nil
}

// RemoveBlob deletes the stored string.
func RemoveBlob(r *Repository, b Blob) error {
	return Remove(r, b)
}
