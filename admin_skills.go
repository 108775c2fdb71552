package portfolio

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/views"
)

// loadSkills returns the stored skill list, storing the defaults on first use
// so edits extend the list the owner sees instead of replacing it.
func (a *App) loadSkills() ([]string, error) {
	skills, ok, err := content.GetValues(a.Repo, content.SkillsEntity)
	if err != nil || ok {
		return skills, err
	}
	if err := content.SaveValues(a.Repo, content.SkillsEntity, defaultSkills); err != nil {
		return defaultSkills, err
	}
	return defaultSkills, nil
}

func (a *App) renderSkills(c echo.Context, st views.Status) error {
	skills, err := a.loadSkills()
	if err != nil && !st.Error {
		st = a.statusFor(err, "")
	}
	return Render(c, views.AdminSkills(a.site(), skills, st, CsrfToken(c)))
}

func (a *App) handleSkills(c echo.Context) error {
	return a.renderSkills(c, views.Status{})
}

func (a *App) handleSkillAdd(c echo.Context) error {
	skill := strings.TrimSpace(c.FormValue("skill"))
	if skill == "" {
		return a.renderSkills(c, views.Status{Text: "Please enter a skill name", Error: true})
	}
	if _, err := a.loadSkills(); err != nil {
		return a.renderSkills(c, a.statusFor(err, ""))
	}
	_, err := content.AppendValue(a.Repo, content.SkillsEntity, skill)
	if err == nil {
		a.Cache.Invalidate()
	}
	return a.renderSkills(c, a.statusFor(err, "Skill added successfully!"))
}

func (a *App) handleSkillRemove(c echo.Context) error {
	_, err := content.RemoveValue(a.Repo, content.SkillsEntity, c.FormValue("skill"))
	if err == nil {
		a.Cache.Invalidate()
	}
	return a.renderSkills(c, a.statusFor(err, "Skill removed successfully!"))
}

func (a *App) handleSkillMove(c echo.Context) error {
	from, err := strconv.Atoi(c.FormValue("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid position")
	}
	to, err := strconv.Atoi(c.FormValue("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid position")
	}
	_, err = content.MoveValue(a.Repo, content.SkillsEntity, from, to)
	if err == nil {
		a.Cache.Invalidate()
	}
	return a.renderSkills(c, a.statusFor(err, "Skill order updated!"))
}
