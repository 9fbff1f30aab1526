package content

import (
	"io"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"
	"time"

	"github.com/charmbracelet/log"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func newTestLocator(roots ...Root) *Locator {
	return NewLocator(roots,
		WithLogger(log.New(io.Discard)),
		WithDefaultImage("/assets/default.jpg"),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func postsRoot() Root {
	return Root{Name: "_posts", FS: fstest.MapFS{
		"hello-world.md": file(`---
title: "Hello World"
excerpt: "First post"
date: "2024-06-01"
coverImage: "/assets/blog/hello/cover.jpg"
ogImage:
  url: "/assets/blog/hello/og.jpg"
topics: ["bitcoin", "news"]
author:
  name: "Jane Doe"
  picture: "/assets/blog/authors/jane.jpeg"
---

Hello body.
`),
		"amas/ama-satoshi.md": file(`---
title: "AMA with Satoshi"
date: 2024-01-01T10:00:00+02:00
topics: ama
interviewee:
  name: "Satoshi"
  picture: "/assets/blog/authors/satoshi.jpeg"
---
Questions.
`),
		"press-releases/launch.md": file("---\ntitle: Launch\ndate: 2023-06-15\n---\nWe launched.\n"),
		"broken.md":                file("---\ntitle: [unclosed\n---\nbody\n"),
		"notes.txt":                file("not content"),
	}}
}

func TestResolveTopLevel(t *testing.T) {
	loc := newTestLocator(postsRoot())
	item, ok := loc.Resolve("hello-world")
	if !ok {
		t.Fatal("expected hello-world to resolve")
	}
	want := Item{
		ID:             "hello-world",
		Title:          "Hello World",
		Excerpt:        "First post",
		Body:           "Hello body.\n",
		Date:           "2024-06-01",
		CoverImage:     "/assets/blog/hello/cover.jpg",
		SocialImage:    "/assets/blog/hello/og.jpg",
		Author:         Author{Name: "Jane Doe", Picture: "/assets/blog/authors/jane.jpeg"},
		Tags:           []string{"bitcoin", "news"},
		Category:       Article,
		SourceLocation: "hello-world",
		Root:           "_posts",
	}
	if !reflect.DeepEqual(item, want) {
		t.Errorf("Resolve = %+v\nwant %+v", item, want)
	}
}

func TestResolvePathQualified(t *testing.T) {
	loc := newTestLocator(postsRoot())
	item, ok := loc.Resolve("amas/ama-satoshi")
	if !ok {
		t.Fatal("expected amas/ama-satoshi to resolve")
	}
	if item.ID != "ama-satoshi" {
		t.Errorf("ID = %q, want last path segment", item.ID)
	}
	if item.SourceLocation != "amas/ama-satoshi" {
		t.Errorf("SourceLocation = %q", item.SourceLocation)
	}
	if item.Category != Interview {
		t.Errorf("Category = %q, want %q", item.Category, Interview)
	}
	if item.Date != "2024-01-01T08:00:00Z" {
		t.Errorf("Date = %q, want UTC timestamp", item.Date)
	}
	if !reflect.DeepEqual(item.Tags, []string{"ama"}) {
		t.Errorf("Tags = %v, want [ama]", item.Tags)
	}
	if item.Interviewee == nil || item.Interviewee.Name != "Satoshi" {
		t.Errorf("Interviewee = %+v", item.Interviewee)
	}
}

func TestResolveBareIDSearchesSubdirectories(t *testing.T) {
	loc := newTestLocator(postsRoot())
	item, ok := loc.Resolve("launch")
	if !ok {
		t.Fatal("expected launch to resolve from press-releases/")
	}
	if item.SourceLocation != "press-releases/launch" {
		t.Errorf("SourceLocation = %q", item.SourceLocation)
	}
	if item.Category != PressRelease {
		t.Errorf("Category = %q, want %q", item.Category, PressRelease)
	}
}

func TestResolveBareIDNeedsSegmentBoundary(t *testing.T) {
	loc := newTestLocator(postsRoot())
	if _, ok := loc.Resolve("satoshi"); ok {
		t.Error("satoshi should not match amas/ama-satoshi.md")
	}
}

func TestResolveEarlierRootWins(t *testing.T) {
	first := Root{Name: "first", FS: fstest.MapFS{"x.md": file("---\ntitle: First\n---\n")}}
	second := Root{Name: "second", FS: fstest.MapFS{"x.md": file("---\ntitle: Second\n---\n")}}
	item, ok := newTestLocator(first, second).Resolve("x")
	if !ok {
		t.Fatal("expected x to resolve")
	}
	if item.Title != "First" || item.Root != "first" {
		t.Errorf("got %q from %q, want First from first", item.Title, item.Root)
	}
}

func TestResolveNotFound(t *testing.T) {
	loc := newTestLocator(postsRoot())
	for _, id := range []string{"missing", "amas/missing", "", "../hello-world", "notes"} {
		if item, ok := loc.Resolve(id); ok {
			t.Errorf("Resolve(%q) = %+v, want not found", id, item)
		}
	}
}

func TestMalformedItemKeepsDirectoryCategory(t *testing.T) {
	root := Root{Name: "content", FS: fstest.MapFS{
		"amas/broken-ama.md": file("---\ntitle: [unclosed\n---\n"),
	}}
	item, ok := newTestLocator(root).Resolve("amas/broken-ama")
	if !ok {
		t.Fatal("expected amas/broken-ama to resolve")
	}
	if !item.Degraded || item.Category != Interview {
		t.Errorf("got degraded=%v category=%q, want true %q", item.Degraded, item.Category, Interview)
	}
	if item.SourceLocation != "amas/broken-ama" || item.Root != "content" {
		t.Errorf("source = %q in %q", item.SourceLocation, item.Root)
	}
}

func TestResolveMalformedHeader(t *testing.T) {
	item, ok := newTestLocator(postsRoot()).Resolve("broken")
	if !ok {
		t.Fatal("a file that exists should always resolve")
	}
	if !item.Degraded {
		t.Error("Degraded = false, want true")
	}
	if item.Title != "Error loading: broken" {
		t.Errorf("Title = %q", item.Title)
	}
	if item.CoverImage != ErrorCoverImage || item.SocialImage != ErrorCoverImage {
		t.Errorf("images = %q, %q", item.CoverImage, item.SocialImage)
	}
	if item.Author != SystemAuthor {
		t.Errorf("Author = %+v, want system author", item.Author)
	}
	if len(item.Tags) != 0 || item.Tags == nil {
		t.Errorf("Tags = %#v, want empty list", item.Tags)
	}
}

func TestResolveDefaults(t *testing.T) {
	root := Root{Name: "r", FS: fstest.MapFS{
		"my_first-post.md": file("Just a body.\n"),
		"stringy.md":       file("---\nauthor: Sam\ndate: not a date\ntags: solo\ninterviewee: Nobody\n---\n"),
	}}
	loc := newTestLocator(root)

	item, _ := loc.Resolve("my_first-post")
	if item.Title != "My First Post" {
		t.Errorf("Title = %q, want derived from id", item.Title)
	}
	if item.Date != "2025-03-01T12:00:00Z" {
		t.Errorf("Date = %q, want clock time", item.Date)
	}
	if item.Author != SystemAuthor {
		t.Errorf("Author = %+v, want system author", item.Author)
	}
	if item.CoverImage != "/assets/default.jpg" || item.SocialImage != "/assets/default.jpg" {
		t.Errorf("images = %q, %q, want default", item.CoverImage, item.SocialImage)
	}
	if item.Body != "Just a body.\n" {
		t.Errorf("Body = %q", item.Body)
	}

	item, _ = loc.Resolve("stringy")
	if item.Author != (Author{Name: "Sam"}) {
		t.Errorf("Author = %+v, want bare name", item.Author)
	}
	if item.Date != "2025-03-01T12:00:00Z" {
		t.Errorf("Date = %q, want clock time for unparseable date", item.Date)
	}
	if !reflect.DeepEqual(item.Tags, []string{"solo"}) {
		t.Errorf("Tags = %v, want [solo] from tags key", item.Tags)
	}
	if item.Interviewee != nil {
		t.Errorf("Interviewee = %+v, want nil for an article", item.Interviewee)
	}
}

func TestListSortsAndSkipsUnreadableRoots(t *testing.T) {
	missing := DirRoot(filepath.Join(t.TempDir(), "does-not-exist"))
	loc := newTestLocator(missing, postsRoot())

	items := loc.List()
	var got []string
	for _, it := range items {
		got = append(got, it.ID)
	}
	want := []string{"broken", "hello-world", "ama-satoshi", "launch"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List ids = %v, want %v", got, want)
	}
}

func TestListShadowsSamePath(t *testing.T) {
	first := Root{Name: "first", FS: fstest.MapFS{"amas/x.md": file("---\ntitle: First\n---\n")}}
	second := Root{Name: "second", FS: fstest.MapFS{
		"amas/x.md": file("---\ntitle: Second\n---\n"),
		"y.md":      file("---\ntitle: Y\n---\n"),
	}}
	items := newTestLocator(first, second).List()
	if len(items) != 2 {
		t.Fatalf("len(List) = %d, want 2", len(items))
	}
	for _, it := range items {
		if it.ID == "x" && it.Title != "First" {
			t.Errorf("x came from %q, want first", it.Root)
		}
	}
}

func TestListEmpty(t *testing.T) {
	items := newTestLocator().List()
	if items == nil || len(items) != 0 {
		t.Errorf("List = %#v, want empty non-nil slice", items)
	}
}

func TestLoadReadsExactFile(t *testing.T) {
	root := Root{Name: "_posts", FS: fstest.MapFS{
		"x.md":       file("---\ntitle: From MD\n---\nmd body\n"),
		"x.markdown": file("---\ntitle: From Markdown\n---\nmarkdown body\n"),
		"dir.md/a":   file("not content"),
	}}
	loc := newTestLocator(root)

	tests := []struct {
		rel   string
		title string
		ok    bool
	}{
		{"x.md", "From MD", true},
		{"x.markdown", "From Markdown", true},
		{"x", "", false},
		{"missing.md", "", false},
		{"dir.md", "", false},
		{"../x.md", "", false},
	}
	for _, tt := range tests {
		it, ok := loc.Load(root, tt.rel)
		if ok != tt.ok || it.Title != tt.title {
			t.Errorf("Load(%q) = %q, %v, want %q, %v", tt.rel, it.Title, ok, tt.title, tt.ok)
		}
	}
	if it, _ := loc.Load(root, "x.markdown"); it.Body != "markdown body\n" {
		t.Errorf("Load(x.markdown).Body = %q", it.Body)
	}
}
