package content

import (
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eringen/pressroom/frontmatter"
)

// Extensions are the file suffixes recognized as content, in lookup order.
var Extensions = []string{".md", ".markdown"}

// Root is a named content directory. Earlier roots shadow later ones.
type Root struct {
	Name string
	FS   fs.FS
}

// DirRoot opens dir on the local file system.
func DirRoot(dir string) Root {
	return Root{Name: dir, FS: os.DirFS(dir)}
}

// Locator resolves identifiers to items across an ordered list of roots.
// It holds no state between calls: every Resolve and List reads the files
// again.
type Locator struct {
	roots        []Root
	logger       *log.Logger
	defaultImage string
	now          func() time.Time
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithLogger sets the logger used for read and parse failures.
func WithLogger(l *log.Logger) LocatorOption {
	return func(loc *Locator) {
		if l != nil {
			loc.logger = l
		}
	}
}

// WithDefaultImage sets the image used when an item names no cover or
// social image.
func WithDefaultImage(src string) LocatorOption {
	return func(loc *Locator) {
		loc.defaultImage = src
	}
}

// WithClock replaces time.Now for items without a usable date.
func WithClock(now func() time.Time) LocatorOption {
	return func(loc *Locator) {
		if now != nil {
			loc.now = now
		}
	}
}

// NewLocator returns a Locator over roots, searched in order.
func NewLocator(roots []Root, opts ...LocatorOption) *Locator {
	l := &Locator{
		roots:  append([]Root(nil), roots...),
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Roots returns the configured roots in search order.
func (l *Locator) Roots() []Root {
	return append([]Root(nil), l.roots...)
}

// Resolve finds the item for id. An id containing "/" is a path relative to
// a root; a bare id is tried at the top of each root first and then matched
// against files in any subdirectory. Found files that fail to parse resolve
// to an ErrorItem. ok is false only when no file matches.
func (l *Locator) Resolve(id string) (Item, bool) {
	name := cleanID(id)
	if name == "" {
		return Item{}, false
	}

	for _, r := range l.roots {
		if rel, ok := lookup(r.FS, name); ok {
			return l.load(r, rel), true
		}
	}
	if strings.Contains(name, "/") {
		return Item{}, false
	}

	for _, r := range l.roots {
		for _, rel := range l.files(r) {
			if matchesBareID(rel, name) {
				return l.load(r, rel), true
			}
		}
	}
	return Item{}, false
}

// List returns every item under every root, newest first. A file present
// under more than one root at the same relative path is read from the first.
// Roots that cannot be read contribute nothing.
func (l *Locator) List() []Item {
	seen := make(map[string]struct{})
	items := []Item{}
	for _, r := range l.roots {
		for _, rel := range l.files(r) {
			key := stripExt(rel)
			if _, shadowed := seen[key]; shadowed {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, l.load(r, rel))
		}
	}
	SortByDate(items)
	return items
}

// Load reads the content file at rel inside r, without any lookup by id.
// ok is false when rel is not a content file that exists in r.
func (l *Locator) Load(r Root, rel string) (Item, bool) {
	if !fs.ValidPath(rel) || !isContentFile(rel) {
		return Item{}, false
	}
	if info, err := fs.Stat(r.FS, rel); err != nil || info.IsDir() {
		return Item{}, false
	}
	return l.load(r, rel), true
}

func (l *Locator) load(r Root, rel string) Item {
	location := stripExt(rel)
	id := path.Base(location)

	raw, err := fs.ReadFile(r.FS, rel)
	if err != nil {
		l.logger.Error("read content", "root", r.Name, "path", rel, "error", err)
		return l.errorItem(r, id, location)
	}
	h, body, err := frontmatter.Parse(raw)
	if err != nil {
		l.logger.Error("parse content", "root", r.Name, "path", rel, "error", err)
		return l.errorItem(r, id, location)
	}
	return l.build(h, body, source{id: id, location: location, root: r.Name})
}

// errorItem keeps the file's location so the placeholder classifies like
// the item it replaces.
func (l *Locator) errorItem(r Root, id, location string) Item {
	item := ErrorItem(id, l.now())
	item.SourceLocation = location
	item.Root = r.Name
	item.Category = Classify(item)
	return item
}

// files walks r and returns the relative paths of its content files in
// lexical order.
func (l *Locator) files(r Root) []string {
	var out []string
	err := fs.WalkDir(r.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			l.logger.Warn("skip unreadable path", "root", r.Name, "path", p, "error", err)
			return nil
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if isContentFile(p) {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		l.logger.Warn("content root unavailable", "root", r.Name, "error", err)
	}
	return out
}

func lookup(fsys fs.FS, name string) (string, bool) {
	for _, ext := range Extensions {
		rel := name + ext
		if info, err := fs.Stat(fsys, rel); err == nil && !info.IsDir() {
			return rel, true
		}
	}
	return "", false
}

// cleanID strips surrounding slashes and a content extension. Ids that would
// escape a root come back empty.
func cleanID(id string) string {
	name := strings.Trim(strings.TrimSpace(id), "/")
	name = stripExt(name)
	if name == "" || !fs.ValidPath(name) {
		return ""
	}
	return name
}

func matchesBareID(rel, id string) bool {
	loc := stripExt(rel)
	return loc == id || strings.HasSuffix(loc, "/"+id)
}

func isContentFile(p string) bool {
	ext := path.Ext(p)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func stripExt(p string) string {
	if isContentFile(p) {
		return strings.TrimSuffix(p, path.Ext(p))
	}
	return p
}
