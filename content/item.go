// Package content resolves, classifies, collects and searches the publishable
// items of a pressroom site. Items are read from markdown files with a header
// block; nothing is cached between calls.
package content

import (
	"strings"
	"time"
)

// Category is the derived classification of an item.
type Category string

const (
	Article      Category = "article"
	Interview    Category = "interview"
	PressRelease Category = "press-release"
)

// Categories lists every category in display order.
var Categories = []Category{Article, Interview, PressRelease}

// Section is the URL path segment under which items of c are published.
func (c Category) Section() string {
	switch c {
	case Interview:
		return "amas"
	case PressRelease:
		return "press-releases"
	default:
		return "posts"
	}
}

// Label is the human-readable plural name of c.
func (c Category) Label() string {
	switch c {
	case Interview:
		return "AMAs"
	case PressRelease:
		return "Press Releases"
	default:
		return "Articles"
	}
}

// ParseCategory accepts a category name or its URL section.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "article", "articles", "post", "posts":
		return Article, true
	case "interview", "interviews", "ama", "amas":
		return Interview, true
	case "press-release", "press-releases", "pr":
		return PressRelease, true
	}
	return "", false
}

// Author is a byline: a name and an optional avatar.
type Author struct {
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

const (
	ErrorCoverImage     = "/assets/blog/error/cover.jpg"
	SystemAuthorPicture = "/assets/blog/authors/system.jpeg"
	errorExcerpt        = "This post could not be loaded due to a formatting error."
)

// SystemAuthor stands in for a missing or unreadable byline.
var SystemAuthor = Author{Name: "System", Picture: SystemAuthorPicture}

// Item is one publishable unit. It is built once per resolution and never
// modified afterwards.
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Body        string   `json:"content"`
	Date        string   `json:"date"`
	CoverImage  string   `json:"coverImage"`
	SocialImage string   `json:"ogImage"`
	Author      Author   `json:"author"`
	Interviewee *Author  `json:"interviewee,omitempty"`
	Tags        []string `json:"topics"`
	Category    Category `json:"category"`
	Degraded    bool     `json:"degraded,omitempty"`

	SourceLocation string `json:"-"`
	Root           string `json:"-"`
}

// ErrorItem is the placeholder substituted for a file that exists but could
// not be parsed.
func ErrorItem(id string, now time.Time) Item {
	item := Item{
		ID:          id,
		Title:       "Error loading: " + id,
		Excerpt:     errorExcerpt,
		Date:        now.UTC().Format(time.RFC3339),
		CoverImage:  ErrorCoverImage,
		SocialImage: ErrorCoverImage,
		Author:      SystemAuthor,
		Tags:        []string{},
		Degraded:    true,
	}
	item.Category = Classify(item)
	return item
}

// HasTag reports whether the item carries tag, ignoring case and surrounding
// whitespace.
func (it Item) HasTag(tag string) bool {
	want := normalizeTag(tag)
	if want == "" {
		return false
	}
	for _, t := range it.Tags {
		if normalizeTag(t) == want {
			return true
		}
	}
	return false
}

// Time parses Date. It returns the zero time for dates that are not ISO-8601,
// which normalized items never have.
func (it Item) Time() time.Time {
	t, _ := parseDate(it.Date)
	return t
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
