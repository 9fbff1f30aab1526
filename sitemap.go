package pressroom

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pressroom/content"
	"github.com/eringen/pressroom/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// sitemapHints gives the change frequency and priority of each section's
// items.
var sitemapHints = map[content.Category][2]string{
	content.Article:      {"monthly", "0.7"},
	content.Interview:    {"monthly", "0.7"},
	content.PressRelease: {"yearly", "0.6"},
}

func (a *App) buildSitemap(items []content.Item) sitemapURLSet {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: views.BuildURL(base), ChangeFreq: "daily", Priority: "1.0"},
		{Loc: views.BuildURL(base, "posts"), ChangeFreq: "daily", Priority: "0.9"},
		{Loc: views.BuildURL(base, "amas"), ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: views.BuildURL(base, "press-releases"), ChangeFreq: "weekly", Priority: "0.8"},
	}
	for _, it := range items {
		if it.Degraded {
			continue
		}
		hint := sitemapHints[it.Category]
		lastMod := ""
		if t := it.Time(); !t.IsZero() {
			lastMod = t.UTC().Format("2006-01-02")
		}
		urls = append(urls, sitemapURL{
			Loc:        views.BuildURL(base, it.Category.Section(), it.ID),
			LastMod:    lastMod,
			ChangeFreq: hint[0],
			Priority:   hint[1],
		})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func (a *App) renderSitemap(c echo.Context, items []content.Item) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(a.buildSitemap(items))
}
