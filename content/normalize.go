package content

import (
	"fmt"
	"path"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/pressroom/frontmatter"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Tags coerces a raw header value into a tag list: nothing becomes an empty
// list, a single string becomes a one-element list and lists pass through.
func Tags(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		if strings.TrimSpace(t) == "" {
			return []string{}
		}
		return []string{t}
	case []string:
		return append([]string{}, t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			switch s := e.(type) {
			case nil:
			case string:
				out = append(out, s)
			default:
				out = append(out, fmt.Sprint(s))
			}
		}
		return out
	default:
		return []string{fmt.Sprint(t)}
	}
}

// TitleFromID turns an identifier like "amas/ama-jane-doe" into "Ama Jane Doe".
func TitleFromID(id string) string {
	base := path.Base(strings.Trim(id, "/"))
	if base == "." || base == "/" {
		return ""
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(base)
}

type source struct {
	id       string
	location string
	root     string
}

// build projects an untyped header into an Item, filling defaults.
func (l *Locator) build(h frontmatter.Header, body []byte, src source) Item {
	item := Item{
		ID:             src.id,
		Title:          strings.TrimSpace(h.String("title")),
		Excerpt:        h.String("excerpt"),
		Body:           string(body),
		Date:           normalizeDate(h.String("date"), l.now()),
		CoverImage:     h.String("coverImage"),
		SocialImage:    h.Map("ogImage").String("url"),
		Author:         authorOrSystem(h["author"]),
		Tags:           Tags(topicsValue(h)),
		SourceLocation: src.location,
		Root:           src.root,
	}
	if item.Title == "" {
		item.Title = TitleFromID(src.id)
	}
	if item.SocialImage == "" {
		item.SocialImage = h.String("ogImage")
	}
	if item.CoverImage == "" {
		item.CoverImage = l.defaultImage
	}
	if item.SocialImage == "" {
		item.SocialImage = l.defaultImage
	}

	item.Category = Classify(item)
	if item.Category == Interview {
		if iv, ok := authorFrom(h["interviewee"]); ok {
			item.Interviewee = &iv
		}
	}
	return item
}

func topicsValue(h frontmatter.Header) any {
	if v, ok := h["topics"]; ok {
		return v
	}
	return h["tags"]
}

func authorOrSystem(v any) Author {
	if a, ok := authorFrom(v); ok {
		return a
	}
	return SystemAuthor
}

func authorFrom(v any) (Author, bool) {
	switch a := v.(type) {
	case string:
		if name := strings.TrimSpace(a); name != "" {
			return Author{Name: name}, true
		}
	case map[string]any:
		h := frontmatter.Header(a)
		if name := strings.TrimSpace(h.String("name")); name != "" {
			return Author{Name: name, Picture: h.String("picture")}, true
		}
	}
	return Author{}, false
}

// normalizeDate keeps date-only values as YYYY-MM-DD and rewrites anything
// with a time component as RFC 3339 UTC. Unusable values become now.
func normalizeDate(raw string, now time.Time) string {
	t, layout := parseDate(raw)
	if t.IsZero() {
		return now.UTC().Format(time.RFC3339)
	}
	if layout == "2006-01-02" {
		return t.Format(layout)
	}
	return t.UTC().Format(time.RFC3339)
}

func parseDate(raw string) (time.Time, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, layout
		}
	}
	return time.Time{}, ""
}
