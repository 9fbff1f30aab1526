package pressroom

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pressroom/content"
	"github.com/eringen/pressroom/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

// buildFeed returns the newest FeedSize items as an RSS 2.0 document.
// Degraded items are left out.
func (a *App) buildFeed(items []content.Item) rssXML {
	base := a.Config.URL
	out := make([]rssItem, 0, min(len(items), a.Config.FeedSize))
	var newest time.Time
	for _, it := range items {
		if len(out) == a.Config.FeedSize {
			break
		}
		if it.Degraded {
			continue
		}
		pubDate := ""
		if t := it.Time(); !t.IsZero() {
			pubDate = t.Format(time.RFC1123Z)
			if t.After(newest) {
				newest = t
			}
		}
		link := views.BuildURL(base, it.Category.Section(), it.ID)
		out = append(out, rssItem{
			Title:       it.Title,
			Link:        link,
			Description: it.Excerpt,
			Author:      it.Author.Name,
			Categories:  it.Tags,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        views.BuildURL(base),
			Description: a.Config.Description,
			Items:       out,
		},
	}
	if !newest.IsZero() {
		feed.Channel.LastBuildDate = newest.Format(time.RFC1123Z)
	}
	return feed
}

func (a *App) renderRSS(c echo.Context, items []content.Item) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(a.buildFeed(items))
}
