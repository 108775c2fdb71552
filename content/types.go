package content

// About is the heading and blurb shown at the top of the profile page.
type About struct {
	Heading     string `json:"heading" yaml:"heading"`
	Description string `json:"description" yaml:"description"`
}

// Project is one entry in the portfolio's project list.
type Project struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link" yaml:"link"`
}

// Message is a visitor submission from the public contact form.
type Message struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // RFC 3339, UTC
	Read      bool   `json:"read"`
}

// Contact is free-form contact information. Its shape is owned by whoever
// writes it.
type Contact map[string]any
