package portfolio

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/views"
)

// loadProjects returns the stored projects, storing the placeholders on
// first use so the admin panel and the public page agree.
func (a *App) loadProjects() ([]content.Project, error) {
	projects, ok, err := content.GetAll(a.Repo, content.ProjectsEntity)
	if err != nil || ok {
		return projects, err
	}
	if err := content.SaveAll(a.Repo, content.ProjectsEntity, defaultProjects); err != nil {
		return defaultProjects, err
	}
	return defaultProjects, nil
}

func (a *App) renderProjects(c echo.Context, st views.Status) error {
	projects, err := a.loadProjects()
	if err != nil && !st.Error {
		st = a.statusFor(err, "")
	}
	return Render(c, views.AdminProjects(a.site(), projects, st, CsrfToken(c)))
}

func (a *App) handleProjects(c echo.Context) error {
	return a.renderProjects(c, views.Status{})
}

func projectIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}
	return id, nil
}

func projectForm(c echo.Context) content.Project {
	return content.Project{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Link:        NormalizeLink(c.FormValue("link")),
	}
}

func (a *App) handleProjectAdd(c echo.Context) error {
	p := projectForm(c)
	if p.Title == "" || p.Description == "" {
		return a.renderProjects(c, views.Status{Text: "Title and description are required", Error: true})
	}
	if _, err := a.loadProjects(); err != nil {
		return a.renderProjects(c, a.statusFor(err, ""))
	}
	_, err := content.Add(a.Repo, content.ProjectsEntity, p)
	if err == nil {
		a.Cache.Invalidate()
	}
	return a.renderProjects(c, a.statusFor(err, "Project added successfully!"))
}

func (a *App) handleProjectUpdate(c echo.Context) error {
	id, err := projectIDParam(c)
	if err != nil {
		return err
	}
	p := projectForm(c)
	if p.Title == "" || p.Description == "" {
		return a.renderProjects(c, views.Status{Text: "Title and description are required", Error: true})
	}
	_, err = content.Update(a.Repo, content.ProjectsEntity, id, map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"link":        p.Link,
	})
	if err == nil {
		a.Cache.Invalidate()
	}
	return a.renderProjects(c, a.statusFor(err, "Project updated successfully!"))
}

func (a *App) handleProjectDelete(c echo.Context) error {
	id, err := projectIDParam(c)
	if err != nil {
		return err
	}
	err = content.Delete(a.Repo, content.ProjectsEntity, id)
	if err == nil {
		a.Cache.Invalidate()
	}
	return a.renderProjects(c, a.statusFor(err, "Project deleted successfully!"))
}
