package markdown

import (
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DefaultImageAlt is written for images without alt text.
const DefaultImageAlt = "Article image"

const linkClass = "underline decoration-2 underline-offset-4"

var priorityAttr = []byte("fetchpriority")

// leadImage marks the first image of a document so it is fetched eagerly.
type leadImage struct{}

func (leadImage) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := n.(*ast.Image); ok && entering {
			img.SetAttribute(priorityAttr, []byte("high"))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
}

// elementRenderer overrides goldmark's output for the elements the site
// styles itself.
type elementRenderer struct {
	imageW, imageH int
}

func (r *elementRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *elementRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	alt := plainText(n, source)
	if alt == "" {
		alt = DefaultImageAlt
	}
	src := SafeURL(string(n.Destination))
	if src == "" {
		_, _ = w.WriteString(html.EscapeString(alt))
		return ast.WalkSkipChildren, nil
	}

	load := `loading="lazy"`
	if _, lead := n.Attribute(priorityAttr); lead {
		load = `fetchpriority="high"`
	}
	title := html.EscapeString(string(n.Title))

	_, _ = w.WriteString(`<span class="markdown-image"><img ` + load +
		` width="` + strconv.Itoa(r.imageW) + `" height="` + strconv.Itoa(r.imageH) +
		`" alt="` + html.EscapeString(alt) + `" src="` + src + `"`)
	if title != "" {
		_, _ = w.WriteString(` title="` + title + `"`)
	}
	_, _ = w.WriteString(` decoding="async"/>`)
	if title != "" {
		_, _ = w.WriteString(`<span class="image-title">` + title + `</span>`)
	}
	_, _ = w.WriteString(`</span>`)
	return ast.WalkSkipChildren, nil
}

func (r *elementRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	href := SafeURL(string(n.Destination))
	if href == "" {
		return ast.WalkContinue, nil
	}
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<a href="` + href + `" class="` + linkClass + `"`)
	if len(n.Title) > 0 {
		_, _ = w.WriteString(` title="` + html.EscapeString(string(n.Title)) + `"`)
	}
	if IsExternal(string(n.Destination)) {
		_, _ = w.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func (r *elementRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	label := html.EscapeString(string(n.Label(source)))
	raw := string(n.URL(source))
	href := SafeURL(raw)
	if href == "" {
		_, _ = w.WriteString(label)
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString(`<a href="` + href + `" class="` + linkClass + `"`)
	if IsExternal(raw) {
		_, _ = w.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	_, _ = w.WriteString(">" + label + "</a>")
	return ast.WalkSkipChildren, nil
}

// renderHeading adds a self-link after h2 and h3 headings.
func (r *elementRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	tag := "h" + strconv.Itoa(n.Level)
	if entering {
		_, _ = w.WriteString("<" + tag)
		if n.Attributes() != nil {
			gmhtml.RenderAttributes(w, n, gmhtml.HeadingAttributeFilter)
		}
		_ = w.WriteByte('>')
		return ast.WalkContinue, nil
	}
	if id, ok := n.AttributeString("id"); ok && (n.Level == 2 || n.Level == 3) {
		if b, ok := id.([]byte); ok {
			_, _ = w.WriteString(`<a href="#` + html.EscapeString(string(b)) + `" class="heading-anchor" aria-hidden="true">#</a>`)
		}
	}
	_, _ = w.WriteString("</" + tag + ">\n")
	return ast.WalkContinue, nil
}

func (r *elementRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := html.EscapeString(string(n.Language(source)))
	if lang != "" {
		_, _ = w.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + lang + `">` + lang + `</span>`)
		_, _ = w.WriteString(`<pre class="code-block"><code class="language-` + lang + `">`)
	} else {
		_, _ = w.WriteString(`<pre class="code-block"><code>`)
	}
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.WriteString(html.EscapeString(string(seg.Value(source))))
	}
	_, _ = w.WriteString("</code></pre>")
	if lang != "" {
		_, _ = w.WriteString("</div>")
	}
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

// plainText concatenates the text below n, dropping inline markup.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
