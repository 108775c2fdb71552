package content

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Seed is initial site content, usually read from a YAML file. Sections left
// out of the file are not touched when the seed is applied.
type Seed struct {
	About        *About    `yaml:"about"`
	Projects     []Project `yaml:"projects"`
	Skills       []string  `yaml:"skills"`
	Contact      Contact   `yaml:"contact"`
	ProfileImage string    `yaml:"profile_image"`
}

// ReadSeed decodes a YAML seed document.
func ReadSeed(r io.Reader) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return Seed{}, fmt.Errorf("content: decode seed: %w", err)
	}
	return s, nil
}

// Apply writes every section present in the seed through the repository.
// Projects replace the stored list as a whole; those without an id are
// numbered in order. An invalid project list is rejected before anything
// is written.
func (s Seed) Apply(r *Repository) error {
	var projects []Project
	if s.Projects != nil {
		projects = make([]Project, 0, len(s.Projects))
		for _, p := range s.Projects {
			if err := assignID(ProjectsEntity, projects, &p, r.now()); err != nil {
				return fmt.Errorf("content: seed projects: %w", err)
			}
			projects = append(projects, p)
		}
	}

	if s.About != nil {
		if err := Save(r, AboutEntity, *s.About); err != nil {
			return err
		}
	}
	if projects != nil {
		if err := SaveAll(r, ProjectsEntity, projects); err != nil {
			return err
		}
	}
	if s.Skills != nil {
		if err := SaveValues(r, SkillsEntity, dedupe(s.Skills)); err != nil {
			return err
		}
	}
	if s.Contact != nil {
		if err := Save(r, ContactEntity, s.Contact); err != nil {
			return err
		}
	}
	if s.ProfileImage != "" {
		if err := SetBlob(r, ProfileImageEntity, s.ProfileImage); err != nil {
			return err
		}
	}
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Export returns the stored value of every registered entity that is
// present, keyed by storage key. JSON entities are returned as raw JSON and
// blobs as plain strings, so the result marshals back to the stored form.
// Stored keys outside the registry are listed in unknown and not exported.
func Export(r *Repository) (out map[string]any, unknown []string, err error) {
	stored, err := r.store.Keys()
	if err != nil {
		return nil, nil, fmt.Errorf("content: list keys: %w", err)
	}
	registered := make(map[string]Entity)
	for _, e := range Entities() {
		registered[e.Key()] = e
	}

	out = make(map[string]any)
	for _, key := range stored {
		e, ok := registered[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		raw, ok, err := r.readRaw(key)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		if _, isBlob := e.(Blob); isBlob || !json.Valid([]byte(raw)) {
			out[key] = raw
			continue
		}
		out[key] = json.RawMessage(raw)
	}
	return out, unknown, nil
}
