package pressroom

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pressroom/content"
	"github.com/eringen/pressroom/views"
)

const (
	homeTopicCount   = 12
	homeSectionItems = 3
	maxSearchPage    = 50
)

func (a *App) handleHome(c echo.Context) error {
	items := a.Library.Items()
	p := views.HomePage{
		Page: a.page(views.PageMeta{
			URL:    views.BuildURL(a.Config.URL),
			JSONLD: views.WebsiteJsonLD(a.site()),
		}),
	}
	if len(items) > 0 {
		hero := items[0]
		p.Hero = &hero
		p.Latest = content.Latest(items[1:], a.Config.LatestCount)
	}
	for _, topic := range a.Config.HomeTopics {
		if found := content.ByTopic(items, topic, homeSectionItems); len(found) > 0 {
			p.Sections = append(p.Sections, views.TopicSection{Topic: topic, Items: found})
		}
	}
	counts := content.TopicCounts(items)
	if len(counts) > homeTopicCount {
		counts = counts[:homeTopicCount]
	}
	for _, tc := range counts {
		if content.IsBlockchainTopic(tc.Topic) {
			p.Chains = append(p.Chains, tc)
		} else {
			p.Topics = append(p.Topics, tc)
		}
	}
	return Render(c, a.Views.Home(p))
}

func (a *App) handleListing(c echo.Context) error {
	cat := sectionOf(c.Path())
	items := content.Filter(a.Library.Items(), cat)

	q := c.QueryParam("q")
	topics := FilterEmpty(c.QueryParams()["topic"])
	page, _ := strconv.Atoi(c.QueryParam("page"))

	res := content.Search(items, content.Query{
		Text:     q,
		Tags:     topics,
		Page:     page,
		PageSize: a.Config.PageSize,
	})

	meta := views.PageMeta{
		Title: cat.Label() + " | " + a.Config.Name,
		URL:   views.BuildURL(a.Config.URL, cat.Section()),
	}
	return Render(c, a.Views.Listing(views.ListingPage{
		Page:     a.page(meta),
		Category: cat,
		Query:    q,
		Topics:   topics,
		Result:   res,
		Counts:   content.TopicCounts(items),
	}))
}

func (a *App) handleItem(c echo.Context) error {
	cat := sectionOf(c.Path())
	slug := c.Param("slug")

	item, ok := a.Library.Find(cat, slug)
	if !ok {
		return echo.ErrNotFound
	}
	if item.Category != cat {
		return c.Redirect(http.StatusMovedPermanently, views.ItemPath(item))
	}

	items := a.Library.Items()
	recent := itemsByID(items, a.recentlyViewed(c, item.ID))

	meta := views.PageMeta{
		Title:       item.Title + " | " + a.Config.Name,
		Description: item.Excerpt,
		URL:         views.BuildURL(a.Config.URL, cat.Section(), item.ID),
		OGType:      "article",
		Image:       item.SocialImage,
		JSONLD:      views.ArticleJsonLD(a.site(), item),
	}
	return Render(c, a.Views.Item(views.ItemPage{
		Page:    a.page(meta),
		Item:    item,
		Body:    RenderBody(item.Body),
		Related: FilterRelated(item, items, relatedCount),
		Recent:  recent,
	}))
}

// handleSearch answers /api/search with one page of matches as JSON. An
// optional category narrows the collection first.
func (a *App) handleSearch(c echo.Context) error {
	items := a.Library.Items()
	if raw := c.QueryParam("category"); raw != "" {
		cat, ok := content.ParseCategory(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown category %q", raw))
		}
		items = content.Filter(items, cat)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if size <= 0 {
		size = a.Config.PageSize
	}
	size = min(size, maxSearchPage)

	return c.JSON(http.StatusOK, content.Search(items, content.Query{
		Text:     c.QueryParam("q"),
		Tags:     FilterEmpty(c.QueryParams()["topic"]),
		Page:     page,
		PageSize: size,
	}))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Library.Items())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Library.Items())
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.ico")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + a.absURL("/sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		p := a.page(views.PageMeta{Title: "Not found | " + a.Config.Name})
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(p))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", "uri", c.Request().RequestURI, "error", err)
		p := a.page(views.PageMeta{Title: "Error | " + a.Config.Name})
		_ = RenderStatus(c, code, a.Views.ServerError(p))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
