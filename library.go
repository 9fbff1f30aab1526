package pressroom

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/eringen/pressroom/content"
)

// Library is the collection source for the web layer. It merges a locator
// over the posts directory with one over the posts and content directories.
// With a zero TTL every call reads the files again; otherwise the merged
// collection is kept until the TTL expires or Invalidate is called.
type Library struct {
	locators []*content.Locator
	dirs     []string
	logger   *log.Logger

	mu      sync.RWMutex
	items   []content.Item
	fetched time.Time
	ttl     time.Duration
}

// NewLibrary builds the locators described by cfg.
func NewLibrary(cfg SiteConfig, logger *log.Logger) *Library {
	opts := []content.LocatorOption{
		content.WithLogger(logger),
		content.WithDefaultImage(cfg.DefaultImage),
	}
	posts := content.DirRoot(cfg.PostsDir)
	dirs := []string{cfg.PostsDir}
	roots := []content.Root{posts}
	if cfg.ContentDir != "" && cfg.ContentDir != cfg.PostsDir {
		roots = append(roots, content.DirRoot(cfg.ContentDir))
		dirs = append(dirs, cfg.ContentDir)
	}
	return &Library{
		locators: []*content.Locator{
			content.NewLocator([]content.Root{posts}, opts...),
			content.NewLocator(roots, opts...),
		},
		dirs:   dirs,
		logger: logger,
		ttl:    cfg.CacheTTL,
	}
}

func (l *Library) valid() bool {
	return l.items != nil && time.Since(l.fetched) < l.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (l *Library) Invalidate() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}

func (l *Library) build() []content.Item {
	listers := make([]content.Lister, len(l.locators))
	for i, loc := range l.locators {
		listers[i] = loc
	}
	return content.BuildCollection(listers...)
}

// Items returns the merged collection, newest first. Callers must not
// modify the returned slice.
func (l *Library) Items() []content.Item {
	if l.ttl <= 0 {
		return l.build()
	}

	l.mu.RLock()
	if l.valid() {
		items := l.items
		l.mu.RUnlock()
		return items
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.valid() {
		l.items = l.build()
		l.fetched = time.Now()
	}
	return l.items
}

// Find resolves the item published at /<section>/<slug>/. For AMAs and press
// releases the category directory is tried before the bare slug; each id is
// tried against every locator in order.
func (l *Library) Find(c content.Category, slug string) (content.Item, bool) {
	ids := []string{slug}
	if c != content.Article {
		ids = []string{c.Section() + "/" + slug, slug}
	}
	for _, id := range ids {
		for _, loc := range l.locators {
			if it, ok := loc.Resolve(id); ok {
				return it, true
			}
		}
	}
	return content.Item{}, false
}

// Resolve looks id up across the locators in order.
func (l *Library) Resolve(id string) (content.Item, bool) {
	for _, loc := range l.locators {
		if it, ok := loc.Resolve(id); ok {
			return it, true
		}
	}
	return content.Item{}, false
}

// Dirs returns the content directories in search order.
func (l *Library) Dirs() []string {
	return append([]string(nil), l.dirs...)
}

// Watch invalidates the cache whenever a file under any content directory
// changes. It returns once the watches are in place; watching stops when ctx
// is done.
func (l *Library) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("content directory not found, not watching", "dir", dir)
			continue
		}
		addTree(watcher, dir, l.logger)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if event.Has(fsnotify.Create) && isDir(event.Name) {
					addTree(watcher, event.Name, l.logger)
				}
				l.logger.Debug("content changed", "path", event.Name, "op", event.Op.String())
				l.Invalidate()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.logger.Warn("watcher error", "error", err)
			}
		}
	}()
	return nil
}

// addTree watches dir and every directory below it; fsnotify is not
// recursive.
func addTree(w *fsnotify.Watcher, dir string, logger *log.Logger) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("walk content directory", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				logger.Warn("watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
