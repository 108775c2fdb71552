package content

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const testSeed = `
about:
  heading: Hello, I'm Ann
  description: I write Go.
projects:
  - title: Site
    description: This site.
    link: https://example.com
  - title: Tool
    description: A CLI.
skills: [Go, SQL, Go]
contact:
  email: ann@example.com
`

func TestSeedApply(t *testing.T) {
	r, _ := newTestRepo(t)
	seed, err := ReadSeed(strings.NewReader(testSeed))
	if err != nil {
		t.Fatalf("ReadSeed failed: %v", err)
	}
	if err := seed.Apply(r); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	about, _, _ := Get(r, AboutEntity)
	if about.Heading != "Hello, I'm Ann" {
		t.Errorf("About = %+v", about)
	}
	projects, _, _ := GetAll(r, ProjectsEntity)
	if len(projects) != 2 || projects[0].ID != 1 || projects[1].ID != 2 {
		t.Errorf("Projects = %+v", projects)
	}
	skills, _, _ := GetValues(r, SkillsEntity)
	if !reflect.DeepEqual(skills, []string{"Go", "SQL"}) {
		t.Errorf("Skills = %v, want duplicates dropped", skills)
	}
	contact, _, _ := Get(r, ContactEntity)
	if contact["email"] != "ann@example.com" {
		t.Errorf("Contact = %v", contact)
	}
	if _, ok, _ := GetBlob(r, ProfileImageEntity); ok {
		t.Error("ProfileImage should stay absent when the seed omits it")
	}
}

func TestReadSeedRejectsUnknownFields(t *testing.T) {
	if _, err := ReadSeed(strings.NewReader("abuot:\n  heading: x\n")); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestExport(t *testing.T) {
	r, mem := newTestRepo(t)
	Save(r, AboutEntity, About{Heading: "h", Description: "d"})
	SetBlob(r, ProfileImageEntity, "data:image/png;base64,AAAA")
	mem.Write("legacy_key", "x")

	out, unknown, err := Export(r)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !reflect.DeepEqual(unknown, []string{"legacy_key"}) {
		t.Errorf("unknown = %v", unknown)
	}
	if len(out) != 2 {
		t.Fatalf("Export returned %d keys, want 2: %v", len(out), out)
	}
	b, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"portfolioAbout":{"heading":"h","description":"d"},"portfolioProfileImage":"data:image/png;base64,AAAA"}`
	if string(b) != want {
		t.Errorf("Export JSON = %s, want %s", b, want)
	}
}

func TestSeedApplyRejectsBadProjectsWithoutWriting(t *testing.T) {
	r, mem := newTestRepo(t)
	SaveAll(r, ProjectsEntity, []Project{{ID: 1, Title: "Old 1"}, {ID: 2, Title: "Old 2"}})
	before := rawValue(t, mem, "portfolioProjects")

	seed, err := ReadSeed(strings.NewReader(`
about:
  heading: New
projects:
  - title: A
  - id: 1
    title: B
`))
	if err != nil {
		t.Fatalf("ReadSeed failed: %v", err)
	}
	if err := seed.Apply(r); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if got := rawValue(t, mem, "portfolioProjects"); got != before {
		t.Errorf("projects changed on failed seed:\n got %s\nwant %s", got, before)
	}
	if _, ok, _ := Get(r, AboutEntity); ok {
		t.Error("about should not be written when the seed is rejected")
	}
}

func TestSeedApplyNumbersAroundExplicitIDs(t *testing.T) {
	r, mem := newTestRepo(t)
	SaveAll(r, ProjectsEntity, []Project{{ID: 9, Title: "Old"}})

	seed, err := ReadSeed(strings.NewReader(`
projects:
  - id: 5
    title: A
  - title: B
`))
	if err != nil {
		t.Fatalf("ReadSeed failed: %v", err)
	}
	if err := seed.Apply(r); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := `[{"id":5,"title":"A","description":"","link":""},{"id":6,"title":"B","description":"","link":""}]`
	if got := rawValue(t, mem, "portfolioProjects"); got != want {
		t.Errorf("stored %s, want %s", got, want)
	}
}
