package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ReminderEmailData holds data for the event reminder email.
type ReminderEmailData struct {
	Email        string
	Title        string
	Date         string
	StartTime    string
	Location     string
	MinutesUntil int
	Message      string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendReminder(ctx context.Context, data *ReminderEmailData) error
}
