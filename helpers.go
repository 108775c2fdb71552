package portfolio

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// emailPattern matches something@something.something.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// NormalizeLink trims s and prefixes https:// when it has no http(s) scheme.
// An empty string stays empty.
func NormalizeLink(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "http") {
		return s
	}
	return "https://" + s
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
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

func isImageDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}
