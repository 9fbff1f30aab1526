// Package markdown renders content bodies to HTML with goldmark, overriding
// how images, links, headings and fenced code are written.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
}

type options struct {
	rawHTML   bool
	hardWraps bool
	imageW    int
	imageH    int
}

// Option configures a Renderer.
type Option func(*options)

// WithoutRawHTML drops raw HTML blocks from the output instead of passing
// them through.
func WithoutRawHTML() Option {
	return func(o *options) { o.rawHTML = false }
}

// WithHardWraps controls whether single newlines inside a paragraph become
// <br> elements.
func WithHardWraps(on bool) Option {
	return func(o *options) { o.hardWraps = on }
}

// WithImageSize sets the width and height written on every image.
func WithImageSize(w, h int) Option {
	return func(o *options) {
		if w > 0 && h > 0 {
			o.imageW, o.imageH = w, h
		}
	}
}

// New returns a Renderer with GitHub-flavored markdown, heading ids, hard
// wraps and raw HTML enabled.
func New(opts ...Option) *Renderer {
	o := options{rawHTML: true, hardWraps: true, imageW: 800, imageH: 450}
	for _, opt := range opts {
		opt(&o)
	}

	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(&elementRenderer{imageW: o.imageW, imageH: o.imageH}, 100)),
	}
	if o.rawHTML {
		rendererOptions = append(rendererOptions, gmhtml.WithUnsafe())
	}
	if o.hardWraps {
		rendererOptions = append(rendererOptions, gmhtml.WithHardWraps())
	}

	return &Renderer{engine: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(leadImage{}, 100)),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)}
}

// Render writes the HTML for src to w.
func (r *Renderer) Render(w io.Writer, src []byte) error {
	if err := r.engine.Convert(src, w); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	return nil
}

// Component returns a templ.Component that renders content.
func (r *Renderer) Component(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := r.Render(&buf, []byte(content)); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

var defaultRenderer = New()

// Markdown returns a templ.Component that renders content with the default
// renderer.
func Markdown(content string) templ.Component {
	return defaultRenderer.Component(content)
}

// RenderMarkdown writes the HTML representation of md to buf.
func RenderMarkdown(buf *bytes.Buffer, md string) error {
	return defaultRenderer.Render(buf, []byte(md))
}
