package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and remembers the first error so component
// bodies can be written straight through.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s HTML-escaped. Safe for element content and quoted attributes.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func (h *htmlWriter) csrf(token string) {
	h.raw(`<input type="hidden" name="_csrf" value="`)
	h.text(token)
	h.raw(`">`)
}

func (h *htmlWriter) status(s Status) {
	if s.Text == "" {
		return
	}
	class := "status status-ok"
	if s.Error {
		class = "status status-error"
	}
	h.raw(`<div class="`, class, `" role="status">`)
	h.text(s.Text)
	h.raw(`</div>`)
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// page wraps body in the document shell shared by every full page.
func page(cfg SiteConfig, title, description string, head string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title>`)
		if description != "" {
			h.raw(`<meta name="description" content="`)
			h.text(description)
			h.raw(`">`)
		}
		h.raw(`<link rel="icon" href="/favicon.svg"><link rel="stylesheet" href="/public/styles.css">`)
		h.raw(head)
		h.raw(`</head><body>`)
		h.render(body)
		h.raw(`<footer><p>&copy; `)
		h.text(cfg.Author)
		h.raw(`</p></footer></body></html>`)
	})
}
