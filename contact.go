package portfolio

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/views"
)

func (a *App) handleContactForm(c echo.Context) error {
	return Render(c, views.ContactPage(a.site(), views.ContactInput{}, nil, CsrfToken(c)))
}

// validateContact returns per-field errors; an empty map means valid.
func validateContact(in views.ContactInput) map[string]string {
	errs := make(map[string]string)
	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if in.Email == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(in.Email) {
		errs["email"] = "Please enter a valid email"
	}
	if in.Subject == "" {
		errs["subject"] = "Subject is required"
	}
	if in.Message == "" {
		errs["message"] = "Message is required"
	}
	return errs
}

// handleContactSubmit appends a visitor message. The message id is assigned
// by the repository from the arrival time.
func (a *App) handleContactSubmit(c echo.Context) error {
	in := views.ContactInput{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Subject: strings.TrimSpace(c.FormValue("subject")),
		Message: strings.TrimSpace(c.FormValue("message")),
	}
	if errs := validateContact(in); len(errs) > 0 {
		return RenderStatus(c, http.StatusUnprocessableEntity, views.ContactPage(a.site(), in, errs, CsrfToken(c)))
	}
	if !a.submitLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many messages. Try again later.")
	}

	msg, err := content.Add(a.Repo, content.MessagesEntity, content.Message{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		a.Logger.Error("saving contact message", "err", err)
		errs := map[string]string{"form": "Error sending message. Please try again."}
		return RenderStatus(c, http.StatusInternalServerError, views.ContactPage(a.site(), in, errs, CsrfToken(c)))
	}
	a.Logger.Info("contact message received", "id", msg.ID, "subject", msg.Subject)
	return Render(c, views.ContactSent(a.site()))
}
