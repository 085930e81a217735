package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects a known renderer ("welcome"); when empty, Subject/Text/HTML
// are used as provided.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
