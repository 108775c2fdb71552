package portfolio

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/kvstore"
)

const testPassword = "hunter22"

func newTestApp(t *testing.T, store kvstore.Storage) *App {
	t.Helper()
	cfg := SiteConfig{
		Name:          "Jane Doe",
		URL:           "https://jane.example",
		AdminPassword: testPassword,
		SessionSecret: "0123456789abcdef0123456789abcdef",
	}
	app := New(cfg,
		WithStorage(store),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err := app.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

// testClient keeps cookies between requests and adds the CSRF token to
// every form it posts.
type testClient struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, app *App) *testClient {
	cl := &testClient{t: t, app: app, cookies: make(map[string]*http.Cookie)}
	cl.get("/")
	return cl
}

func (cl *testClient) send(req *http.Request) *httptest.ResponseRecorder {
	cl.t.Helper()
	req.RemoteAddr = "192.0.2.10:4321"
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	cl.app.Echo.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c
	}
	return rec
}

func (cl *testClient) get(target string) *httptest.ResponseRecorder {
	cl.t.Helper()
	return cl.send(httptest.NewRequest(http.MethodGet, target, nil))
}

func (cl *testClient) csrf() string {
	if c, ok := cl.cookies["_csrf"]; ok {
		return c.Value
	}
	return ""
}

func (cl *testClient) post(target string, form url.Values) *httptest.ResponseRecorder {
	cl.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("_csrf", cl.csrf())
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cl.send(req)
}

func (cl *testClient) login() {
	cl.t.Helper()
	rec := cl.post("/admin/login/", url.Values{"password": {testPassword}})
	if rec.Code != http.StatusSeeOther {
		cl.t.Fatalf("login: expected 303, got %d", rec.Code)
	}
}

func TestHomeRendersDefaults(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)

	rec := cl.get("/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Front-End Developer", "Project 1", "Tailwind CSS", "Jane Doe", "application/ld+json"} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=60" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestHomeEscapesStoredContent(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	if err := content.Save(app.Repo, content.AboutEntity, content.About{Heading: "<script>alert(1)</script>"}); err != nil {
		t.Fatal(err)
	}
	rec := newTestClient(t, app).get("/")
	if strings.Contains(rec.Body.String(), "<script>alert(1)") {
		t.Error("heading was not escaped")
	}
}

func TestHomeFallsBackOnCorruptContent(t *testing.T) {
	store := kvstore.NewMemory(0)
	if err := store.Write("portfolioSkills", "{not json"); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, store)

	rec := newTestClient(t, app).get("/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Git &amp; GitHub") {
		t.Error("expected default skills")
	}
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)

	for _, path := range []string{"/admin/about/", "/admin/projects/", "/admin/skills/", "/admin/profile/", "/admin/messages/"} {
		rec := cl.get(path)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/" {
			t.Errorf("GET %s: expected redirect to /admin/, got %d %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}

	rec := cl.post("/admin/about/", url.Values{"heading": {"pwned"}})
	if rec.Code != http.StatusSeeOther {
		t.Errorf("POST without login: expected 303, got %d", rec.Code)
	}
	if _, ok, _ := content.Get(app.Repo, content.AboutEntity); ok {
		t.Error("about should not have been written")
	}
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader("name=a"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)

	rec := cl.post("/admin/login/", url.Values{"password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Error("expected error message")
	}

	cl.login()
	rec = cl.get("/admin/")
	if !strings.Contains(rec.Body.String(), "Dashboard") {
		t.Error("expected dashboard after login")
	}
}

func TestAdminLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)
	cl.login()

	stolen := *cl.cookies[sessionName]
	cl.post("/admin/logout/", nil)

	// Replaying the old cookie must not work once the token is revoked.
	cl.cookies[sessionName] = &stolen
	rec := cl.get("/admin/about/")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after logout, got %d", rec.Code)
	}
}

func TestAdminAboutSaveInvalidatesPage(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)
	cl.get("/") // warm the snapshot cache
	cl.login()

	rec := cl.post("/admin/about/", url.Values{"heading": {"  Gopher  "}, "description": {"Writes Go."}})
	if !strings.Contains(rec.Body.String(), "Changes saved successfully!") {
		t.Fatalf("expected success status, got %s", rec.Body.String())
	}
	about, ok, err := content.Get(app.Repo, content.AboutEntity)
	if err != nil || !ok {
		t.Fatalf("Get: %v %v", ok, err)
	}
	if about.Heading != "Gopher" || about.Description != "Writes Go." {
		t.Errorf("unexpected about: %+v", about)
	}
	if !strings.Contains(cl.get("/").Body.String(), "Gopher") {
		t.Error("public page still shows cached about")
	}
}

func TestAdminProjects(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)
	cl.login()

	rec := cl.post("/admin/projects/", url.Values{"title": {"Site"}, "description": {"My site"}, "link": {"example.com"}})
	if !strings.Contains(rec.Body.String(), "Project added successfully!") {
		t.Fatalf("add failed: %s", rec.Body.String())
	}
	projects, _, err := content.GetAll(app.Repo, content.ProjectsEntity)
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 4 {
		t.Fatalf("expected placeholders plus new project, got %d", len(projects))
	}
	added := projects[3]
	if added.ID != 4 || added.Link != "https://example.com" {
		t.Errorf("unexpected project: %+v", added)
	}

	rec = cl.post("/admin/projects/", url.Values{"title": {"No description"}})
	if !strings.Contains(rec.Body.String(), "Title and description are required") {
		t.Error("expected validation message")
	}

	cl.post("/admin/projects/4/", url.Values{"title": {"Renamed"}, "description": {"My site"}, "link": {""}})
	p, err := content.Find(app.Repo, content.ProjectsEntity, 4)
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Renamed" || p.Link != "" {
		t.Errorf("update not applied: %+v", p)
	}

	cl.post("/admin/projects/1/delete/", nil)
	rec = cl.post("/admin/projects/1/delete/", nil)
	if !strings.Contains(rec.Body.String(), "That item no longer exists.") {
		t.Error("expected not-found status on second delete")
	}
	projects, _, _ = content.GetAll(app.Repo, content.ProjectsEntity)
	if len(projects) != 3 {
		t.Errorf("expected 3 projects after delete, got %d", len(projects))
	}
}

func TestAdminSkills(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)
	cl.login()

	cl.post("/admin/skills/", url.Values{"skill": {"Go"}})
	skills, _, err := content.GetValues(app.Repo, content.SkillsEntity)
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 7 || skills[6] != "Go" {
		t.Fatalf("unexpected skills: %v", skills)
	}

	rec := cl.post("/admin/skills/", url.Values{"skill": {"HTML"}})
	if !strings.Contains(rec.Body.String(), "That already exists!") {
		t.Error("expected duplicate status")
	}
	rec = cl.post("/admin/skills/", url.Values{"skill": {"   "}})
	if !strings.Contains(rec.Body.String(), "Please enter a skill name") {
		t.Error("expected empty name status")
	}

	cl.post("/admin/skills/move/", url.Values{"from": {"6"}, "to": {"0"}})
	cl.post("/admin/skills/delete/", url.Values{"skill": {"Git & GitHub"}})
	skills, _, _ = content.GetValues(app.Repo, content.SkillsEntity)
	want := []string{"Go", "HTML", "CSS", "JavaScript", "React.js", "Tailwind CSS"}
	if strings.Join(skills, ",") != strings.Join(want, ",") {
		t.Errorf("skills = %v, want %v", skills, want)
	}

	rec = cl.post("/admin/skills/move/", url.Values{"from": {"0"}, "to": {"9"}})
	if !strings.Contains(rec.Body.String(), "status-error") {
		t.Error("expected error for out of range move")
	}
}

func TestContactValidation(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)

	rec := cl.post("/contact/", url.Values{"name": {"Ann"}, "email": {"not-an-email"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Please enter a valid email", "Subject is required", "Message is required"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(body, "Name is required") {
		t.Error("name was provided")
	}
	if _, ok, _ := content.GetAll(app.Repo, content.MessagesEntity); ok {
		t.Error("invalid submission was stored")
	}
}

func TestContactSubmitAndReadMessage(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)

	rec := cl.post("/contact/", url.Values{
		"name":    {" Ann "},
		"email":   {"ann@example.com"},
		"subject": {"Hello"},
		"message": {"Nice work"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	messages, _, err := content.GetAll(app.Repo, content.MessagesEntity)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	m := messages[0]
	if m.ID <= 0 || m.Name != "Ann" || m.Read || m.Timestamp == "" {
		t.Errorf("unexpected message: %+v", m)
	}

	cl.login()
	if !strings.Contains(cl.get("/admin/").Body.String(), "(1 unread)") {
		t.Error("dashboard should count the unread message")
	}
	rec = cl.get("/admin/messages/" + strconv.FormatInt(m.ID, 10) + "/")
	if !strings.Contains(rec.Body.String(), "Nice work") {
		t.Error("expected message body")
	}
	m, err = content.Find(app.Repo, content.MessagesEntity, m.ID)
	if err != nil || !m.Read {
		t.Errorf("message should be marked read: %+v %v", m, err)
	}

	cl.post("/admin/messages/delete/", nil)
	if _, ok, _ := content.GetAll(app.Repo, content.MessagesEntity); ok {
		t.Error("messages should be absent after clearing")
	}
}

func TestWriteOverQuotaShowsStatus(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(64))
	cl := newTestClient(t, app)
	cl.login()

	rec := cl.post("/admin/about/", url.Values{"heading": {strings.Repeat("x", 100)}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Storage is full") {
		t.Error("expected quota status")
	}
}

func TestRobotsAndSitemap(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	cl := newTestClient(t, app)

	if body := cl.get("/robots.txt").Body.String(); !strings.Contains(body, "Sitemap: https://jane.example/sitemap.xml") {
		t.Errorf("robots.txt = %q", body)
	}
	body := cl.get("/sitemap.xml").Body.String()
	if !strings.Contains(body, "<loc>https://jane.example/contact/</loc>") {
		t.Errorf("sitemap missing contact page: %s", body)
	}
}

func TestMessagesNewestFirstWithinOneSecond(t *testing.T) {
	app := newTestApp(t, kvstore.NewMemory(0))
	ts := "2024-05-01T12:00:00Z"
	for _, m := range []content.Message{
		{ID: 1714564800100, Subject: "first", Timestamp: ts},
		{ID: 1714564800500, Subject: "second", Timestamp: ts},
		{ID: 1714564800900, Subject: "third", Timestamp: ts},
	} {
		if _, err := content.Add(app.Repo, content.MessagesEntity, m); err != nil {
			t.Fatal(err)
		}
	}

	messages, err := app.loadMessages()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, m := range messages {
		got = append(got, m.Subject)
	}
	if strings.Join(got, ",") != "third,second,first" {
		t.Errorf("order = %v", got)
	}
}
