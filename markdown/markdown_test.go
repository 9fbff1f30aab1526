package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, md); err != nil {
		t.Fatalf("RenderMarkdown(%q) failed: %v", md, err)
	}
	return buf.String()
}

func TestRenderMarkdownEmphasis(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"text `code` more", "<code>code</code>"},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		if got := render(t, tt.input); !strings.Contains(got, tt.expected) {
			t.Errorf("RenderMarkdown(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```go\nfmt.Println(\"<hi>\")\n```")
	for _, want := range []string{
		`<div class="code-block-wrapper">`,
		`<span class="code-lang code-lang-go">go</span>`,
		`<code class="language-go">`,
		`fmt.Println(&#34;&lt;hi&gt;&#34;)`,
		"</code></pre></div>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("code block missing %q: %q", want, got)
		}
	}
}

func TestRenderMarkdownCodeBlockWithoutLanguage(t *testing.T) {
	got := render(t, "```\nplain code\n```")
	if !strings.Contains(got, `<pre class="code-block"><code>plain code`) {
		t.Errorf("unexpected code block: %q", got)
	}
	if strings.Contains(got, "code-block-wrapper") {
		t.Errorf("code block without language should not be wrapped: %q", got)
	}
}

func TestRenderMarkdownHeadings(t *testing.T) {
	got := render(t, "# Title\n\n## Getting Started\n\n#### Deep")
	if !strings.Contains(got, `<h1 id="title">Title</h1>`) {
		t.Errorf("h1 should have an id and no anchor: %q", got)
	}
	if !strings.Contains(got, `<h2 id="getting-started">Getting Started<a href="#getting-started" class="heading-anchor" aria-hidden="true">#</a></h2>`) {
		t.Errorf("h2 should carry a self-link: %q", got)
	}
	if !strings.Contains(got, `<h4 id="deep">Deep</h4>`) {
		t.Errorf("h4 should have no anchor: %q", got)
	}
}

func TestRenderMarkdownLinks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"[Wikipedia](https://en.wikipedia.org/wiki/Some_Article_Title)",
			`<a href="https://en.wikipedia.org/wiki/Some_Article_Title" class="underline decoration-2 underline-offset-4" target="_blank" rel="noopener noreferrer">Wikipedia</a>`,
		},
		{
			"[home](/posts/hello/)",
			`<a href="/posts/hello/" class="underline decoration-2 underline-offset-4">home</a>`,
		},
		{
			"[section](#intro)",
			`<a href="#intro" class="underline decoration-2 underline-offset-4">section</a>`,
		},
		{
			"[bad](javascript:alert(1))",
			`<p>bad</p>`,
		},
	}
	for _, tt := range tests {
		if got := render(t, tt.input); !strings.Contains(got, tt.expected) {
			t.Errorf("RenderMarkdown(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownImages(t *testing.T) {
	got := render(t, "![](/assets/a.jpg)\n\n![Chart](https://example.com/b.png \"Weekly\")")
	if !strings.Contains(got, `<img fetchpriority="high" width="800" height="450" alt="Article image" src="/assets/a.jpg" decoding="async"/>`) {
		t.Errorf("first image should be eager with a default alt: %q", got)
	}
	if !strings.Contains(got, `<img loading="lazy" width="800" height="450" alt="Chart" src="https://example.com/b.png" title="Weekly" decoding="async"/>`) {
		t.Errorf("second image should be lazy with its title: %q", got)
	}
	if !strings.Contains(got, `<span class="image-title">Weekly</span>`) {
		t.Errorf("image title should be shown: %q", got)
	}
}

func TestRenderMarkdownUnsafeImage(t *testing.T) {
	got := render(t, "![oops](javascript:alert(1))")
	if strings.Contains(got, "<img") || !strings.Contains(got, "oops") {
		t.Errorf("unsafe image should render as its alt text: %q", got)
	}
}

func TestRenderMarkdownRawHTML(t *testing.T) {
	md := "<div class=\"info-notice\">\nHeads up\n</div>"
	if got := render(t, md); !strings.Contains(got, `<div class="info-notice">`) {
		t.Errorf("raw HTML should pass through: %q", got)
	}

	var buf bytes.Buffer
	if err := New(WithoutRawHTML()).Render(&buf, []byte(md)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(buf.String(), `<div class="info-notice">`) {
		t.Errorf("raw HTML should be omitted: %q", buf.String())
	}
}

func TestRenderMarkdownHardWraps(t *testing.T) {
	if got := render(t, "one\ntwo"); !strings.Contains(got, "<br>") {
		t.Errorf("single newlines should break: %q", got)
	}
	var buf bytes.Buffer
	if err := New(WithHardWraps(false)).Render(&buf, []byte("one\ntwo")); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(buf.String(), "<br") {
		t.Errorf("hard wraps disabled: %q", buf.String())
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |")
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("table not rendered: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("# Hi").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Hi</h1>") {
		t.Errorf("component output = %q", buf.String())
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
		media string
	}{
		{"https://example.com/a?x=1&y=2", "https://example.com/a?x=1&amp;y=2", "https://example.com/a?x=1&amp;y=2"},
		{"/assets/img.png", "/assets/img.png", "/assets/img.png"},
		{"images/img.png", "images/img.png", "images/img.png"},
		{"#top", "#top", "#top"},
		{"mailto:a@b.c", "mailto:a@b.c", ""},
		{"javascript:alert(1)", "", ""},
		{"JavaScript:alert(1)", "", ""},
		{"data:text/html;base64,AAAA", "", ""},
		{"//evil.example/x", "", ""},
		{"  ", "", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.want {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if got := SafeMediaURL(tt.input); got != tt.media {
			t.Errorf("SafeMediaURL(%q) = %q, want %q", tt.input, got, tt.media)
		}
	}
}

func TestIsExternal(t *testing.T) {
	if !IsExternal("https://example.com") {
		t.Error("https URL should be external")
	}
	if IsExternal("/posts/x/") || IsExternal("#a") {
		t.Error("relative URLs are internal")
	}
}
