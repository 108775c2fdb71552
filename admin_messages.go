package portfolio

import (
	"cmp"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/views"
)

// loadMessages returns all messages, newest first.
func (a *App) loadMessages() ([]content.Message, error) {
	messages, _, err := content.GetAll(a.Repo, content.MessagesEntity)
	if err != nil {
		return nil, err
	}
	// Ids are arrival times in milliseconds, finer than the timestamp field.
	slices.SortFunc(messages, func(x, y content.Message) int {
		return cmp.Compare(y.ID, x.ID)
	})
	return messages, nil
}

func (a *App) renderMessages(c echo.Context, selected *content.Message, st views.Status) error {
	messages, err := a.loadMessages()
	if err != nil && !st.Error {
		st = a.statusFor(err, "")
	}
	return Render(c, views.AdminMessages(a.site(), messages, selected, st, CsrfToken(c)))
}

func (a *App) handleMessages(c echo.Context) error {
	return a.renderMessages(c, nil, views.Status{})
}

func messageIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid message id")
	}
	return id, nil
}

// handleMessageView expands one message and marks it read.
func (a *App) handleMessageView(c echo.Context) error {
	id, err := messageIDParam(c)
	if err != nil {
		return err
	}
	m, err := content.Find(a.Repo, content.MessagesEntity, id)
	if err != nil {
		return a.renderMessages(c, nil, a.statusFor(err, ""))
	}
	if !m.Read {
		if m, err = content.Update(a.Repo, content.MessagesEntity, id, map[string]any{"read": true}); err != nil {
			return a.renderMessages(c, nil, a.statusFor(err, ""))
		}
	}
	return a.renderMessages(c, &m, views.Status{})
}

func (a *App) handleMessageDelete(c echo.Context) error {
	id, err := messageIDParam(c)
	if err != nil {
		return err
	}
	err = content.Delete(a.Repo, content.MessagesEntity, id)
	return a.renderMessages(c, nil, a.statusFor(err, "Message deleted"))
}

func (a *App) handleMessagesClear(c echo.Context) error {
	err := content.Remove(a.Repo, content.MessagesEntity)
	if err == nil {
		a.Logger.Info("messages cleared")
	}
	return a.renderMessages(c, nil, a.statusFor(err, "All messages deleted"))
}
