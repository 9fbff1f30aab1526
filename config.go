package pressroom

import (
	"errors"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SiteConfig holds all configuration for a pressroom site.
type SiteConfig struct {
	Name         string // Site name (default "CryptoBitMag")
	URL          string // Canonical URL (default "http://localhost:3000")
	Description  string // Site description for RSS and meta tags
	Author       string // Publisher name for JSON-LD
	DefaultImage string // Cover and social image for items without one

	Addr       string // Listen address (default ":3000")
	PostsDir   string // Primary content root (default "_posts")
	ContentDir string // Secondary content root searched after PostsDir (default "content")
	StaticDir  string // User static assets (default "public")

	PageSize    int      // Listing page size (default 12)
	LatestCount int      // Items in the home page "Latest" strip (default 4)
	HomeTopics  []string // Topic sections on the home page
	FeedSize    int      // Items in feed.xml (default 20)

	CacheTTL        time.Duration // Collection cache TTL; 0 rebuilds on every request
	Watch           bool          // Invalidate the collection cache on file changes
	SearchRateLimit int           // /api/search requests per IP per minute (default 60)

	SessionSecret string // Signs the reader session cookie; random per process when empty
	CookieSecure  bool   // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "CryptoBitMag"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.DefaultImage == "" {
		c.DefaultImage = "/assets/blog/default/cover.jpg"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostsDir == "" {
		c.PostsDir = "_posts"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PageSize == 0 {
		c.PageSize = 12
	}
	if c.LatestCount == 0 {
		c.LatestCount = 4
	}
	if c.HomeTopics == nil {
		c.HomeTopics = []string{"bitcoin", "ethereum", "solana", "news"}
	}
	if c.FeedSize == 0 {
		c.FeedSize = 20
	}
	if c.SearchRateLimit == 0 {
		c.SearchRateLimit = 60
	}
}

// Validate reports configuration values the server cannot run with.
func (c SiteConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.URL, validation.Required, validation.By(absoluteHTTPURL)),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.PostsDir, validation.Required),
		validation.Field(&c.PageSize, validation.Min(1), validation.Max(100)),
		validation.Field(&c.LatestCount, validation.Min(0)),
		validation.Field(&c.FeedSize, validation.Min(1)),
		validation.Field(&c.CacheTTL, validation.Min(time.Duration(0))),
		validation.Field(&c.SearchRateLimit, validation.Min(0)),
	)
}

func absoluteHTTPURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("must be an absolute http or https URL")
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.Logger = l
		}
	}
}

// WithViews overrides some or all default page components. Nil fields keep
// the default.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v.merge(a.Views)
	}
}
