package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/pressroom/content"
)

// Site holds site-wide settings. Every page renders with it so nothing is
// hardcoded in templates.
type Site struct {
	Name         string
	URL          string
	Description  string
	Author       string
	DefaultImage string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	JSONLD      string
}

// Page is embedded by every page model.
type Page struct {
	Site Site
	Meta PageMeta
}

// TopicSection is a titled strip of items sharing a topic.
type TopicSection struct {
	Topic string
	Items []content.Item
}

type HomePage struct {
	Page
	Hero     *content.Item
	Latest   []content.Item
	Sections []TopicSection
	Chains   []content.TopicCount // blockchain topics, most used first
	Topics   []content.TopicCount
}

// ListingPage is one page of a category listing with its active filters.
type ListingPage struct {
	Page
	Category content.Category
	Query    string
	Topics   []string
	Result   content.Result
	Counts   []content.TopicCount
}

// ItemPage renders a single item. Body is the rendered markdown.
type ItemPage struct {
	Page
	Item    content.Item
	Body    templ.Component
	Related []content.Item
	Recent  []content.Item
}
