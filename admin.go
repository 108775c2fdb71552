package portfolio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !a.IsAdmin(c) {
		return Render(c, views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return a.renderDashboard(c, views.Status{})
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	if a.checkPassword(c.FormValue("password")) {
		if err := a.setAdminSession(c); err != nil {
			return err
		}
		a.Logger.Info("admin login", "ip", ip)
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Logger.Warn("admin login failed", "ip", ip)
	return RenderStatus(c, http.StatusUnauthorized, views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func (a *App) handleAdminLogout(c echo.Context) error {
	if err := a.clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) renderDashboard(c echo.Context, st views.Status) error {
	var d views.Dashboard
	if messages, _, err := content.GetAll(a.Repo, content.MessagesEntity); err == nil {
		d.Messages = len(messages)
		for _, m := range messages {
			if !m.Read {
				d.Unread++
			}
		}
	} else {
		st = a.statusFor(err, "")
	}
	if projects, _, err := content.GetAll(a.Repo, content.ProjectsEntity); err == nil {
		d.Projects = len(projects)
	}
	if skills, _, err := content.GetValues(a.Repo, content.SkillsEntity); err == nil {
		d.Skills = len(skills)
	}
	if _, ok, err := content.GetBlob(a.Repo, content.ProfileImageEntity); err == nil {
		d.HasImage = ok
	}
	return Render(c, views.AdminDashboard(a.site(), d, st, CsrfToken(c)))
}

// loadAbout returns the stored about section or the built-in one.
func (a *App) loadAbout() (content.About, error) {
	about, ok, err := content.Get(a.Repo, content.AboutEntity)
	if err != nil || !ok {
		return defaultAbout, err
	}
	return about, nil
}

func (a *App) handleAboutForm(c echo.Context) error {
	about, err := a.loadAbout()
	var st views.Status
	if err != nil {
		st = views.Status{Text: "Failed to load about section data", Error: true}
		a.Logger.Warn("loading about", "err", err)
	}
	return Render(c, views.AdminAbout(a.site(), about, st, CsrfToken(c)))
}

func (a *App) handleAboutSave(c echo.Context) error {
	about := content.About{
		Heading:     strings.TrimSpace(c.FormValue("heading")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
	err := content.Save(a.Repo, content.AboutEntity, about)
	if err == nil {
		a.Cache.Invalidate()
	}
	return Render(c, views.AdminAbout(a.site(), about, a.statusFor(err, "Changes saved successfully!"), CsrfToken(c)))
}
