package views

import (
	"fmt"
	"sort"

	"github.com/a-h/templ"

	"github.com/eringen/portfolio/content"
)

// Profile is the public portfolio page.
func Profile(cfg SiteConfig, about content.About, projects []content.Project, skills []string, image string, contact content.Contact) templ.Component {
	head := `<script type="application/ld+json">` + PersonJsonLD(cfg, about, skills) + `</script>`
	body := component(func(h *htmlWriter) {
		h.raw(`<header class="site-header"><h1>`)
		h.text(cfg.Name)
		h.raw(`</h1><nav><a href="#about">About</a> <a href="#projects">Projects</a> <a href="#skills">Skills</a> <a href="#contact">Contact</a></nav></header>`)

		h.raw(`<main><section id="about" class="about">`)
		if image != "" {
			h.raw(`<img class="avatar" alt="Profile picture" src="`)
			h.text(image)
			h.raw(`">`)
		}
		h.raw(`<h2>`)
		h.text(about.Heading)
		h.raw(`</h2><p>`)
		h.text(about.Description)
		h.raw(`</p></section>`)

		h.raw(`<section id="projects" class="projects"><h2>Projects</h2><div class="grid">`)
		for _, p := range projects {
			h.raw(`<article class="card"><h3>`)
			h.text(p.Title)
			h.raw(`</h3><p>`)
			h.text(p.Description)
			h.raw(`</p>`)
			if href := safeLink(p.Link); href != "" {
				h.raw(`<a href="`)
				h.text(href)
				h.raw(`" target="_blank" rel="noopener noreferrer">View project</a>`)
			}
			h.raw(`</article>`)
		}
		h.raw(`</div></section>`)

		h.raw(`<section id="skills" class="skills"><h2>Skills</h2><ul>`)
		for _, s := range skills {
			h.raw(`<li>`)
			h.text(s)
			h.raw(`</li>`)
		}
		h.raw(`</ul></section>`)

		h.raw(`<section id="contact" class="contact"><h2>Contact</h2>`)
		if len(contact) > 0 {
			keys := make([]string, 0, len(contact))
			for k := range contact {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			h.raw(`<dl>`)
			for _, k := range keys {
				h.raw(`<dt>`)
				h.text(k)
				h.raw(`</dt><dd>`)
				h.text(fmt.Sprint(contact[k]))
				h.raw(`</dd>`)
			}
			h.raw(`</dl>`)
		}
		h.raw(`<a class="button" href="/contact/">Contact me</a></section></main>`)
	})
	return page(cfg, cfg.Name, cfg.Description, head, body)
}

// ContactPage is the contact form on its own page.
func ContactPage(cfg SiteConfig, in ContactInput, errs map[string]string, csrfToken string) templ.Component {
	return page(cfg, "Contact | "+cfg.Name, "", "", ContactForm(in, errs, csrfToken))
}

// ContactForm renders the form with per-field errors.
func ContactForm(in ContactInput, errs map[string]string, csrfToken string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<form class="contact-form" method="post" action="/contact/">`)
		h.csrf(csrfToken)
		field := func(name, label, value string, textarea bool) {
			h.raw(`<label for="`, name, `">`, label, `</label>`)
			if textarea {
				h.raw(`<textarea id="`, name, `" name="`, name, `" rows="5">`)
				h.text(value)
				h.raw(`</textarea>`)
			} else {
				h.raw(`<input id="`, name, `" name="`, name, `" value="`)
				h.text(value)
				h.raw(`">`)
			}
			if msg := errs[name]; msg != "" {
				h.raw(`<p class="field-error">`)
				h.text(msg)
				h.raw(`</p>`)
			}
		}
		field("name", "Name", in.Name, false)
		field("email", "Email", in.Email, false)
		field("subject", "Subject", in.Subject, false)
		field("message", "Message", in.Message, true)
		if msg := errs["form"]; msg != "" {
			h.status(Status{Text: msg, Error: true})
		}
		h.raw(`<button type="submit">Send message</button></form>`)
	})
}

// ContactSent confirms a submission.
func ContactSent(cfg SiteConfig) templ.Component {
	return page(cfg, "Message sent | "+cfg.Name, "", "", component(func(h *htmlWriter) {
		h.raw(`<main><p class="status status-ok">Message sent successfully!</p><a href="/">Back to the portfolio</a></main>`)
	}))
}

// NotFound is the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return page(cfg, "Not found | "+cfg.Name, "", "", component(func(h *htmlWriter) {
		h.raw(`<main><h1>Page not found</h1><a href="/">Back to the portfolio</a></main>`)
	}))
}

// ServerError is the 5xx page.
func ServerError(cfg SiteConfig) templ.Component {
	return page(cfg, "Error | "+cfg.Name, "", "", component(func(h *htmlWriter) {
		h.raw(`<main><h1>Something went wrong</h1><p>Please try again later.</p></main>`)
	}))
}
