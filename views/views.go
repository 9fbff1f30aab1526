// Package views holds the default page components. Templates are embedded
// html/template files exposed as templ components, so callers can swap any
// page for their own templ code.
package views

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func Home(p HomePage) templ.Component {
	return component("home", p)
}

func Listing(p ListingPage) templ.Component {
	return component("listing", p)
}

type itemView struct {
	ItemPage
	HTML template.HTML
}

// Item renders p with its body component inlined.
func Item(p ItemPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		view := itemView{ItemPage: p}
		if p.Body != nil {
			body, err := templ.ToGoHTML(ctx, p.Body)
			if err != nil {
				return err
			}
			view.HTML = body
		}
		return component("item", view).Render(ctx, w)
	})
}

func NotFound(p Page) templ.Component {
	return component("notfound", p)
}

func ServerError(p Page) templ.Component {
	return component("servererror", p)
}
