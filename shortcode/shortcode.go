// Package shortcode rewrites the editor shortcodes found in content bodies
// into markdown or HTML before the body is rendered.
//
// Supported forms:
//
//	{{image src="/a.jpg" caption="A caption"}}
//	{{image src="/a.jpg"}}
//	{{embed url="https://www.youtube.com/embed/x"}}
//	{{code language="go"}}...{{/code}}
//	{{notice type="warning"}}...{{/notice}}
//
// A shortcode that is malformed, unterminated or points at an unsafe URL is
// left in the text as written.
package shortcode

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/eringen/pressroom/markdown"
)

// NoticeTypes are the notice types with a dedicated style. Other types get
// the plain "notice" class.
var NoticeTypes = []string{"info", "warning", "error", "success", "tip"}

// A rule rewrites every occurrence of one shortcode kind in s. Rewritten
// text goes through seal, so later rules never see it.
type rule func(s string, seal func(string) string) string

type rewriter func(groups []string) (string, bool)

// inline rewrites a self-closing shortcode.
func inline(re *regexp.Regexp, rewrite rewriter) rule {
	return func(s string, seal func(string) string) string {
		return re.ReplaceAllStringFunc(s, func(match string) string {
			out, ok := rewrite(re.FindStringSubmatch(match))
			if !ok {
				return match
			}
			return seal(out)
		})
	}
}

// paired rewrites an opener, body and closer. The body ends at the first
// closer; an opener whose body would run into another opener of the same
// kind, or that is never closed, stays literal. The rewriter receives the
// opener's groups with the body appended.
func paired(open, anyOpen *regexp.Regexp, closer string, rewrite rewriter) rule {
	return func(s string, seal func(string) string) string {
		var b strings.Builder
		for {
			loc := open.FindStringSubmatchIndex(s)
			if loc == nil {
				b.WriteString(s)
				return b.String()
			}
			rest := s[loc[1]:]
			end := strings.Index(rest, closer)
			if next := anyOpen.FindStringIndex(rest); end < 0 || (next != nil && next[0] < end) {
				b.WriteString(s[:loc[1]])
				s = rest
				continue
			}

			groups := make([]string, 0, len(loc)/2+1)
			for i := 0; i < len(loc); i += 2 {
				if loc[i] < 0 {
					groups = append(groups, "")
				} else {
					groups = append(groups, s[loc[i]:loc[i+1]])
				}
			}
			out, ok := rewrite(append(groups, rest[:end]))
			if !ok {
				b.WriteString(s[:loc[1]])
				s = rest
				continue
			}
			b.WriteString(s[:loc[0]])
			b.WriteString(seal(out))
			s = rest[end+len(closer):]
		}
	}
}

// Order matters: captioned images must be handled before bare ones.
var rules = []rule{
	inline(regexp.MustCompile(`\{\{image\s+src="([^"]+)"\s+caption="([^"]+)"[^}]*\}\}`), figure),
	inline(regexp.MustCompile(`\{\{image\s+src="([^"]+)"[^}]*\}\}`), image),
	inline(regexp.MustCompile(`\{\{embed\s+url="([^"]+)"[^}]*\}\}`), embed),
	paired(regexp.MustCompile(`\{\{code\s+language="([^"]+)"[^}]*\}\}`), regexp.MustCompile(`\{\{code[\s}]`), "{{/code}}", code),
	paired(regexp.MustCompile(`\{\{notice\s+type="([^"]*)"[^}]*\}\}`), regexp.MustCompile(`\{\{notice[\s}]`), "{{/notice}}", notice),
}

// Transform applies every shortcode rewrite to s in order. Text without
// shortcodes is returned unchanged, and no rule rewrites what an earlier
// rule produced.
func Transform(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	// Rewritten fragments are swapped for tokens built from a marker that
	// does not occur in s, then restored newest first so that a fragment
	// wrapping an older token is expanded before it.
	marker := "\x00"
	for strings.Contains(s, marker) {
		marker += "\x00"
	}
	var sealed []string
	seal := func(out string) string {
		sealed = append(sealed, out)
		return marker + strconv.Itoa(len(sealed)-1) + marker
	}

	for _, r := range rules {
		s = r(s, seal)
	}
	for i := len(sealed) - 1; i >= 0; i-- {
		s = strings.Replace(s, marker+strconv.Itoa(i)+marker, sealed[i], 1)
	}
	return s
}

func figure(g []string) (string, bool) {
	src := markdown.SafeMediaURL(g[1])
	if src == "" {
		return "", false
	}
	caption := html.EscapeString(g[2])
	return "<figure>\n<img src=\"" + src + "\" alt=\"" + caption + "\" />\n<figcaption>" + caption + "</figcaption>\n</figure>", true
}

func image(g []string) (string, bool) {
	if markdown.SafeMediaURL(g[1]) == "" || strings.ContainsAny(g[1], " ()<>") {
		return "", false
	}
	return "![](" + g[1] + ")", true
}

func embed(g []string) (string, bool) {
	src := markdown.SafeMediaURL(g[1])
	if src == "" {
		return "", false
	}
	return "<div class=\"embed-container\">\n<iframe src=\"" + src + "\" frameborder=\"0\" allowfullscreen></iframe>\n</div>", true
}

func code(g []string) (string, bool) {
	lang := strings.TrimSpace(g[1])
	if lang == "" || strings.ContainsAny(lang, "`\n") {
		return "", false
	}
	body := strings.TrimPrefix(strings.TrimPrefix(g[2], "\r\n"), "\n")
	body = strings.TrimSuffix(strings.TrimSuffix(body, "\n"), "\r")
	return "```" + lang + "\n" + body + "\n```", true
}

func notice(g []string) (string, bool) {
	class := "notice"
	for _, t := range NoticeTypes {
		if g[1] == t {
			class = t + "-notice"
			break
		}
	}
	return "<div class=\"" + class + "\">\n" + g[2] + "\n</div>", true
}
