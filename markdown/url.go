package markdown

import (
	"html"
	"net/url"
	"strings"
)

// SafeURL validates and sanitizes a URL for use in HTML attributes. Relative
// references and http, https, mailto and tel URLs pass and come back
// HTML-escaped; anything else returns "".
func SafeURL(raw string) string {
	return safe(raw, "http", "https", "mailto", "tel")
}

// SafeMediaURL is SafeURL restricted to relative, http and https URLs, for
// sources of images and embedded frames.
func SafeMediaURL(raw string) string {
	return safe(raw, "http", "https")
}

// IsExternal reports whether raw is an absolute http or https URL.
func IsExternal(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	}
	return false
}

func safe(raw string, schemes ...string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" || strings.ContainsAny(val, "\x00\n\r\t") {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		if strings.HasPrefix(val, "//") {
			return ""
		}
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil {
		return ""
	}
	if parsed.Scheme == "" {
		if parsed.Host != "" {
			return ""
		}
		return html.EscapeString(val)
	}
	scheme := strings.ToLower(parsed.Scheme)
	for _, s := range schemes {
		if scheme == s {
			return html.EscapeString(val)
		}
	}
	return ""
}
