package portfolio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/eringen/portfolio/content"
)

// Snapshot is everything the public profile page shows, read in one pass.
type Snapshot struct {
	About        content.About
	Projects     []content.Project
	Skills       []string
	ProfileImage string
	Contact      content.Contact
}

// Built-in content shown until the owner saves their own.
var (
	defaultAbout = content.About{
		Heading:     "Hello, I'm a Front-End Developer",
		Description: "I specialize in building responsive and interactive web applications using modern technologies.",
	}
	defaultProjects = []content.Project{
		{ID: 1, Title: "Project 1", Description: "Description of project 1."},
		{ID: 2, Title: "Project 2", Description: "Description of project 2."},
		{ID: 3, Title: "Project 3", Description: "Description of project 3."},
	}
	defaultSkills = []string{"HTML", "CSS", "JavaScript", "React.js", "Tailwind CSS", "Git & GitHub"}
)

// LoadSnapshot reads every public entity. Absent values and values that
// fail to decode fall back to the built-in defaults; neither is an error
// for the page. Only storage failures are returned.
func LoadSnapshot(r *content.Repository, log *slog.Logger) (Snapshot, error) {
	s := Snapshot{
		About:    defaultAbout,
		Projects: defaultProjects,
		Skills:   defaultSkills,
	}

	about, ok, err := content.Get(r, content.AboutEntity)
	if err = softFail(log, err); err != nil {
		return Snapshot{}, err
	} else if ok {
		s.About = about
	}

	projects, ok, err := content.GetAll(r, content.ProjectsEntity)
	if err = softFail(log, err); err != nil {
		return Snapshot{}, err
	} else if ok {
		s.Projects = projects
	}

	skills, ok, err := content.GetValues(r, content.SkillsEntity)
	if err = softFail(log, err); err != nil {
		return Snapshot{}, err
	} else if ok {
		s.Skills = skills
	}

	img, ok, err := content.GetBlob(r, content.ProfileImageEntity)
	if err != nil {
		return Snapshot{}, err
	} else if ok && isImageDataURI(img) {
		s.ProfileImage = img
	}

	contact, ok, err := content.Get(r, content.ContactEntity)
	if err = softFail(log, err); err != nil {
		return Snapshot{}, err
	} else if ok {
		s.Contact = contact
	}
	return s, nil
}

// softFail swallows decode errors after logging them.
func softFail(log *slog.Logger, err error) error {
	if content.IsDeserialization(err) {
		log.Warn("stored content unreadable, using defaults", "err", err)
		return nil
	}
	return err
}

// SnapshotCache holds the last Snapshot for a TTL so the public page does
// not decode every entity on every request. Admin writes invalidate it.
type SnapshotCache struct {
	mu      sync.RWMutex
	snap    *Snapshot
	fetched time.Time
	ttl     time.Duration
	repo    *content.Repository
	log     *slog.Logger
}

// NewSnapshotCache creates a SnapshotCache backed by the given Repository.
func NewSnapshotCache(r *content.Repository, ttl time.Duration, log *slog.Logger) *SnapshotCache {
	return &SnapshotCache{repo: r, ttl: ttl, log: log}
}

func (c *SnapshotCache) valid() bool {
	return c.snap != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

// Get returns the cached snapshot, reloading it when stale. It tries a read
// lock first and only takes the write lock if a reload is needed.
func (c *SnapshotCache) Get() (Snapshot, error) {
	c.mu.RLock()
	if c.valid() {
		s := *c.snap
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return *c.snap, nil
	}
	s, err := LoadSnapshot(c.repo, c.log)
	if err != nil {
		return Snapshot{}, err
	}
	c.snap = &s
	c.fetched = time.Now()
	return s, nil
}
