package pressroom

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pressroom/content"
	"github.com/eringen/pressroom/markdown"
	"github.com/eringen/pressroom/shortcode"
	"github.com/eringen/pressroom/views"
)

const relatedCount = 3

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FilterRelated finds items that share at least one topic with current,
// in collection order, stopping after limit matches. A limit of zero or
// less returns them all.
func FilterRelated(current content.Item, items []content.Item, limit int) []content.Item {
	if len(current.Tags) == 0 {
		return nil
	}
	var related []content.Item
	for _, it := range items {
		if it.ID == current.ID {
			continue
		}
		for _, t := range current.Tags {
			if it.HasTag(t) {
				related = append(related, it)
				break
			}
		}
		if limit > 0 && len(related) == limit {
			break
		}
	}
	return related
}

// RenderBody expands shortcodes in an item body and renders the markdown.
func RenderBody(body string) templ.Component {
	return markdown.Markdown(shortcode.Transform(body))
}

func (a *App) site() views.Site {
	return views.Site{
		Name:         a.Config.Name,
		URL:          a.Config.URL,
		Description:  a.Config.Description,
		Author:       a.Config.Author,
		DefaultImage: a.Config.DefaultImage,
	}
}

// page builds the shared page model. An empty title falls back to the site
// name and an empty image to the default image.
func (a *App) page(meta views.PageMeta) views.Page {
	if meta.Title == "" {
		meta.Title = a.Config.Name
	}
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	if meta.Image == "" {
		meta.Image = a.Config.DefaultImage
	}
	return views.Page{Site: a.site(), Meta: meta}
}

// absURL resolves a site-relative path against the configured URL.
func (a *App) absURL(ref string) string {
	return strings.TrimRight(a.Config.URL, "/") + "/" + strings.TrimLeft(ref, "/")
}

// sectionOf maps a registered route path such as "/amas/:slug/" to its
// category.
func sectionOf(routePath string) content.Category {
	seg, _, _ := strings.Cut(strings.TrimPrefix(routePath, "/"), "/")
	if c, ok := content.ParseCategory(seg); ok {
		return c
	}
	return content.Article
}
