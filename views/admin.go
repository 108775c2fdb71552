package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/portfolio/content"
)

func adminPage(cfg SiteConfig, title, csrfToken string, st Status, body func(h *htmlWriter)) templ.Component {
	return page(cfg, title+" | Admin", "", `<meta name="robots" content="noindex">`, component(func(h *htmlWriter) {
		h.raw(`<header class="admin-header"><nav>`)
		h.raw(`<a href="/admin/">Dashboard</a> <a href="/admin/about/">About</a> <a href="/admin/projects/">Projects</a> `)
		h.raw(`<a href="/admin/skills/">Skills</a> <a href="/admin/profile/">Profile image</a> <a href="/admin/messages/">Messages</a> <a href="/">View site</a>`)
		h.raw(`</nav><form method="post" action="/admin/logout/">`)
		h.csrf(csrfToken)
		h.raw(`<button type="submit">Log out</button></form></header><main class="admin"><h1>`)
		h.text(title)
		h.raw(`</h1>`)
		h.status(st)
		body(h)
		h.raw(`</main>`)
	}))
}

// postButton renders a one-button form, used for deletes.
func postButton(h *htmlWriter, action, label, csrfToken string) {
	h.raw(`<form class="inline" method="post" action="`)
	h.text(action)
	h.raw(`">`)
	h.csrf(csrfToken)
	h.raw(`<button type="submit">`)
	h.text(label)
	h.raw(`</button></form>`)
}

// AdminLogin is the admin login form.
func AdminLogin(cfg SiteConfig, showError bool, csrfToken string) templ.Component {
	return page(cfg, "Admin login | "+cfg.Name, "", `<meta name="robots" content="noindex">`, component(func(h *htmlWriter) {
		h.raw(`<main class="login"><h1>Admin login</h1>`)
		if showError {
			h.status(Status{Text: "Invalid credentials", Error: true})
		}
		h.raw(`<form method="post" action="/admin/login/">`)
		h.csrf(csrfToken)
		h.raw(`<label for="password">Password</label><input id="password" type="password" name="password" autofocus>`)
		h.raw(`<button type="submit">Log in</button></form></main>`)
	}))
}

// AdminDashboard is the admin landing page.
func AdminDashboard(cfg SiteConfig, d Dashboard, st Status, csrfToken string) templ.Component {
	return adminPage(cfg, "Dashboard", csrfToken, st, func(h *htmlWriter) {
		h.raw(`<ul class="stats">`)
		h.raw(`<li><a href="/admin/messages/">Messages: `, strconv.Itoa(d.Messages), ` (`, strconv.Itoa(d.Unread), ` unread)</a></li>`)
		h.raw(`<li><a href="/admin/projects/">Projects: `, strconv.Itoa(d.Projects), `</a></li>`)
		h.raw(`<li><a href="/admin/skills/">Skills: `, strconv.Itoa(d.Skills), `</a></li>`)
		if d.HasImage {
			h.raw(`<li><a href="/admin/profile/">Profile image set</a></li>`)
		} else {
			h.raw(`<li><a href="/admin/profile/">No profile image</a></li>`)
		}
		h.raw(`</ul>`)
	})
}

// AdminAbout edits the about section.
func AdminAbout(cfg SiteConfig, about content.About, st Status, csrfToken string) templ.Component {
	return adminPage(cfg, "About", csrfToken, st, func(h *htmlWriter) {
		h.raw(`<form method="post" action="/admin/about/">`)
		h.csrf(csrfToken)
		h.raw(`<label for="heading">Heading</label><input id="heading" name="heading" value="`)
		h.text(about.Heading)
		h.raw(`"><label for="description">Description</label><textarea id="description" name="description" rows="6">`)
		h.text(about.Description)
		h.raw(`</textarea><button type="submit">Save</button></form>`)
	})
}

func projectFields(h *htmlWriter, p content.Project) {
	h.raw(`<input name="title" placeholder="Title" value="`)
	h.text(p.Title)
	h.raw(`"><textarea name="description" placeholder="Description" rows="3">`)
	h.text(p.Description)
	h.raw(`</textarea><input name="link" placeholder="https://" value="`)
	h.text(p.Link)
	h.raw(`">`)
}

// AdminProjects lists projects with inline edit forms and an add form.
func AdminProjects(cfg SiteConfig, projects []content.Project, st Status, csrfToken string) templ.Component {
	return adminPage(cfg, "Projects", csrfToken, st, func(h *htmlWriter) {
		h.raw(`<h2>Add project</h2><form method="post" action="/admin/projects/">`)
		h.csrf(csrfToken)
		projectFields(h, content.Project{})
		h.raw(`<button type="submit">Add</button></form>`)

		if len(projects) == 0 {
			h.raw(`<p>No projects yet.</p>`)
			return
		}
		for _, p := range projects {
			base := "/admin/projects/" + strconv.FormatInt(p.ID, 10) + "/"
			h.raw(`<article class="card"><form method="post" action="`, base, `">`)
			h.csrf(csrfToken)
			projectFields(h, p)
			h.raw(`<button type="submit">Save</button></form>`)
			postButton(h, base+"delete/", "Delete", csrfToken)
			h.raw(`</article>`)
		}
	})
}

// AdminSkills lists skills in order with remove and move controls.
func AdminSkills(cfg SiteConfig, skills []string, st Status, csrfToken string) templ.Component {
	return adminPage(cfg, "Skills", csrfToken, st, func(h *htmlWriter) {
		h.raw(`<form method="post" action="/admin/skills/">`)
		h.csrf(csrfToken)
		h.raw(`<input name="skill" placeholder="Enter skill name"><button type="submit">Add</button></form><ol class="skills">`)
		for i, s := range skills {
			h.raw(`<li><span>`)
			h.text(s)
			h.raw(`</span>`)
			if i > 0 {
				moveButton(h, i, i-1, "Up", csrfToken)
			}
			if i < len(skills)-1 {
				moveButton(h, i, i+1, "Down", csrfToken)
			}
			h.raw(`<form class="inline" method="post" action="/admin/skills/delete/">`)
			h.csrf(csrfToken)
			h.raw(`<input type="hidden" name="skill" value="`)
			h.text(s)
			h.raw(`"><button type="submit">Remove</button></form>`)
			h.raw(`</li>`)
		}
		h.raw(`</ol>`)
	})
}

func moveButton(h *htmlWriter, from, to int, label, csrfToken string) {
	h.raw(`<form class="inline" method="post" action="/admin/skills/move/">`)
	h.csrf(csrfToken)
	h.raw(`<input type="hidden" name="from" value="`, strconv.Itoa(from), `">`)
	h.raw(`<input type="hidden" name="to" value="`, strconv.Itoa(to), `">`)
	h.raw(`<button type="submit">`, label, `</button></form>`)
}

// AdminProfileImage uploads or removes the profile picture.
func AdminProfileImage(cfg SiteConfig, image string, st Status, csrfToken string) templ.Component {
	return adminPage(cfg, "Profile image", csrfToken, st, func(h *htmlWriter) {
		if image != "" {
			h.raw(`<img class="avatar" alt="Current profile picture" src="`)
			h.text(image)
			h.raw(`">`)
			postButton(h, "/admin/profile/delete/", "Remove image", csrfToken)
		} else {
			h.raw(`<p>No profile image uploaded.</p>`)
		}
		h.raw(`<form method="post" action="/admin/profile/" enctype="multipart/form-data">`)
		h.csrf(csrfToken)
		h.raw(`<input type="file" name="image" accept="image/png,image/jpeg,image/gif"><button type="submit">Upload</button></form>`)
		h.raw(`<ul class="hint"><li>Maximum file size: 2MB</li><li>Images are resized and stored as JPEG</li></ul>`)
	})
}

// AdminMessages lists contact messages newest first, with one expanded.
func AdminMessages(cfg SiteConfig, messages []content.Message, selected *content.Message, st Status, csrfToken string) templ.Component {
	return adminPage(cfg, "Messages", csrfToken, st, func(h *htmlWriter) {
		if len(messages) == 0 {
			h.raw(`<p>No messages yet.</p>`)
			return
		}
		postButton(h, "/admin/messages/delete/", "Delete all", csrfToken)
		h.raw(`<ul class="messages">`)
		for _, m := range messages {
			id := strconv.FormatInt(m.ID, 10)
			class := "read"
			if !m.Read {
				class = "unread"
			}
			h.raw(`<li class="`, class, `"><a href="/admin/messages/`, id, `/">`)
			h.text(m.Name)
			h.raw(` &mdash; `)
			h.text(m.Subject)
			h.raw(`</a> <time>`)
			h.text(FormatTimestamp(m.Timestamp))
			h.raw(`</time>`)
			postButton(h, "/admin/messages/"+id+"/delete/", "Delete", csrfToken)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
		if selected != nil {
			h.raw(`<article class="message"><h2>`)
			h.text(selected.Subject)
			h.raw(`</h2><p>From: <strong>`)
			h.text(selected.Name)
			h.raw(`</strong> Email: <strong>`)
			h.text(selected.Email)
			h.raw(`</strong></p><pre>`)
			h.text(selected.Message)
			h.raw(`</pre><a class="button" href="`)
			h.text(string(templ.URL("mailto:" + selected.Email + "?subject=" + PathEscape("Re: "+selected.Subject))))
			h.raw(`">Reply via email</a></article>`)
		}
	})
}
