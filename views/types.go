package views

// SiteConfig holds site-wide settings populated from the environment.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// Status is the transient message shown after an admin action.
type Status struct {
	Text  string
	Error bool
}

// ContactInput is the contact form as submitted, echoed back on errors.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Dashboard carries the counts shown on the admin landing page.
type Dashboard struct {
	Unread   int
	Messages int
	Projects int
	Skills   int
	HasImage bool
}
