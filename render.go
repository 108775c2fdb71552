package portfolio

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/kvstore"
	"github.com/eringen/portfolio/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// statusFor turns the outcome of an admin action into the message shown
// above the form. Write failures are reported, not escalated to a 500 page:
// the form the owner just submitted stays on screen.
func (a *App) statusFor(err error, done string) views.Status {
	switch {
	case err == nil:
		return views.Status{Text: done}
	case errors.Is(err, kvstore.ErrQuotaExceeded):
		return views.Status{Text: "Storage is full. Remove something (for example the profile image) and try again.", Error: true}
	case errors.Is(err, content.ErrNotFound):
		return views.Status{Text: "That item no longer exists.", Error: true}
	case errors.Is(err, content.ErrDuplicate):
		return views.Status{Text: "That already exists!", Error: true}
	case errors.Is(err, content.ErrOutOfRange):
		return views.Status{Text: "That position is out of range.", Error: true}
	case content.IsDeserialization(err):
		a.Logger.Error("stored content unreadable", "err", err)
		return views.Status{Text: "Stored data is unreadable; it was left untouched.", Error: true}
	default:
		a.Logger.Error("admin write failed", "err", err)
		return views.Status{Text: "Error: " + err.Error(), Error: true}
	}
}
