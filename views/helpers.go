package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/pressroom/content"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
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

// ItemPath is the site-relative URL of an item.
func ItemPath(it content.Item) string {
	return "/" + it.Category.Section() + "/" + url.PathEscape(it.ID) + "/"
}

// Slugify converts a label to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// TopicLabel formats a topic for display: "layer2" becomes "Layer2" and
// "press-release" becomes "Press Release".
func TopicLabel(topic string) string {
	switch strings.ToLower(topic) {
	case "defi":
		return "DeFi"
	case "nfts":
		return "NFTs"
	case "dao":
		return "DAO"
	case "ama":
		return "AMA"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(topic, "-", " "))
}

// FormatDate renders an item date like "June 1, 2024". Unparseable dates
// come back as given.
func FormatDate(it content.Item) string {
	t := it.Time()
	if t.IsZero() {
		return it.Date
	}
	return t.Format("January 2, 2006")
}

// PageNumbers returns the page links to show for a pager: all pages when
// there are five or fewer, otherwise the first and last page around a window
// of the current one. Zero marks an elided run.
func PageNumbers(current, total int) []int {
	const maxShown = 5
	if total <= maxShown {
		pages := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}
	start := max(2, current-1)
	end := min(total-1, current+1)
	if current <= 3 {
		end = min(total-1, 4)
	} else if current >= total-2 {
		start = max(2, total-3)
	}

	pages := []int{1}
	if start > 2 {
		pages = append(pages, 0)
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < total-1 {
		pages = append(pages, 0)
	}
	return append(pages, total)
}

// ListingURL builds the URL of a listing page, keeping filters in the query.
func ListingURL(c content.Category, query string, topics []string, page int) string {
	v := url.Values{}
	if query = strings.TrimSpace(query); query != "" {
		v.Set("q", query)
	}
	for _, t := range topics {
		v.Add("topic", t)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	u := "/" + c.Section() + "/"
	if len(v) > 0 {
		u += "?" + v.Encode()
	}
	return u
}

// ToggleTopic returns topics with topic added, or removed when present.
func ToggleTopic(topics []string, topic string) []string {
	out := make([]string, 0, len(topics)+1)
	found := false
	for _, t := range topics {
		if strings.EqualFold(t, topic) {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, topic)
	}
	return out
}

// HasTopic reports whether topics contains topic, ignoring case.
func HasTopic(topics []string, topic string) bool {
	for _, t := range topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "inline-flex items-center rounded border border-ink bg-stone-100 px-2.5 py-1 text-[11px] font-semibold uppercase tracking-[0.12em] hover:-translate-y-0.5 transition"
	if active {
		base += " bg-ink text-white"
	}
	return base
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using site values.
func WebsiteJsonLD(site Site) string {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      BuildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	return marshalJsonLD(data)
}

// ArticleJsonLD produces a Schema.org NewsArticle JSON-LD block for an item.
func ArticleJsonLD(site Site, it content.Item) string {
	itemURL := BuildURL(site.URL, it.Category.Section(), it.ID)
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "NewsArticle",
		"headline":      it.Title,
		"description":   it.Excerpt,
		"datePublished": it.Date,
		"url":           itemURL,
		"author": map[string]string{
			"@type": "Person",
			"name":  it.Author.Name,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   itemURL,
		},
	}
	if it.SocialImage != "" {
		data["image"] = absoluteURL(site.URL, it.SocialImage)
	}
	if len(it.Tags) > 0 {
		data["keywords"] = strings.Join(it.Tags, ", ")
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func absoluteURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

var funcs = template.FuncMap{
	"itemPath":    ItemPath,
	"topicLabel":  TopicLabel,
	"formatDate":  FormatDate,
	"pageNumbers": PageNumbers,
	"listingURL":  ListingURL,
	"toggleTopic": ToggleTopic,
	"hasTopic":    HasTopic,
	"tagClass":    TagClass,
	"slugify":     Slugify,
	"absURL":      absoluteURL,
	"year":        func() int { return time.Now().Year() },
	"jsonLD":      func(s string) template.JS { return template.JS(s) },
	"add":         func(a, b int) int { return a + b },
	"blockchains": func() []string { return content.BlockchainTopics },
	"subtopics":   func() []string { return content.Subtopics },
}
