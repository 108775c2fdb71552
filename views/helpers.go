package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/portfolio/content"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PersonJsonLD produces a Schema.org Person JSON-LD block for the profile.
func PersonJsonLD(cfg SiteConfig, about content.About, skills []string) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     cfg.Author,
		"url":      buildURL(cfg.URL),
	}
	if about.Description != "" {
		data["description"] = about.Description
	}
	if len(skills) > 0 {
		data["knowsAbout"] = skills
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	// Keep "</script>" inside a value from closing the block early.
	return strings.ReplaceAll(string(b), "</", `<\/`)
}

// FormatTimestamp renders an RFC 3339 timestamp for humans, or returns the
// input unchanged if it does not parse.
func FormatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("Jan 2, 2006 15:04")
}

// safeLink returns a sanitized href, or "" for links templ refuses.
func safeLink(link string) string {
	if link == "" {
		return ""
	}
	u := string(templ.URL(link))
	if strings.HasPrefix(u, "about:invalid") {
		return ""
	}
	return u
}

// PathEscape wraps url.PathEscape for use in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}
