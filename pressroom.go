// Package pressroom is a content-driven publishing site built with Go, Echo,
// and templ. It serves articles, AMAs and press releases read from markdown
// files, with search, topic filters, RSS and a sitemap out of the box.
//
// Content lives on disk; there is no database. Users can replace any page
// through ViewFuncs and pressroom handles routing, middleware and the content
// pipeline.
package pressroom

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pressroom/views"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. This is the inversion-of-control mechanism that lets users own and
// customize all templates.
type ViewFuncs struct {
	Home        func(views.HomePage) templ.Component
	Listing     func(views.ListingPage) templ.Component
	Item        func(views.ItemPage) templ.Component
	NotFound    func(views.Page) templ.Component
	ServerError func(views.Page) templ.Component
}

// DefaultViews returns the built-in page components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Listing:     views.Listing,
		Item:        views.Item,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v ViewFuncs) merge(base ViewFuncs) ViewFuncs {
	if v.Home == nil {
		v.Home = base.Home
	}
	if v.Listing == nil {
		v.Listing = base.Listing
	}
	if v.Item == nil {
		v.Item = base.Item
	}
	if v.NotFound == nil {
		v.NotFound = base.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = base.ServerError
	}
	return v
}

// App is the central pressroom application. It wires together the content
// library, handlers, middleware, and page components.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Library *Library
	Views   ViewFuncs
	Logger  *log.Logger

	searchLimiter *RateLimiter
	customRoutes  []func(*App)
	stopWatch     context.CancelFunc
}

// New creates an App with the given configuration. Routes are registered
// immediately, so the App can be used as an http.Handler without Start.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
		Logger: NewLogger(os.Stderr, log.InfoLevel),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.Config.Validate(); err != nil {
		return nil, fmt.Errorf("pressroom: invalid config: %w", err)
	}

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.Library = NewLibrary(a.Config, a.Logger)
	a.searchLimiter = NewRateLimiter(a.Config.SearchRateLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

// ServeHTTP lets the App be mounted or tested as a plain handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Echo.ServeHTTP(w, r)
}

// Start begins watching content when configured and serves until ctx is
// cancelled or the server fails.
func (a *App) Start(ctx context.Context) error {
	if a.Config.Watch {
		watchCtx, cancel := context.WithCancel(ctx)
		a.stopWatch = cancel
		if err := a.Library.Watch(watchCtx); err != nil {
			cancel()
			return fmt.Errorf("pressroom: watch content: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("listening", "addr", a.Config.Addr, "url", a.Config.URL)
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("pressroom: shutdown: %w", err)
		}
		return nil
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.Static("/assets", a.Config.StaticDir+"/assets")
	e.GET("/favicon.ico", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/img", a.handleImage)

	e.GET("/api/search", a.handleSearch, a.searchRateLimit())

	e.GET("/", a.handleHome)
	for _, c := range []string{"posts", "amas", "press-releases"} {
		e.GET("/"+c+"/", a.handleListing)
		e.GET("/"+c+"/:slug/", a.handleItem)
	}
}

// Close stops background work. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.searchLimiter != nil {
		a.searchLimiter.Stop()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
