package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventPublishedEmailData holds data for the "event is live" receipt.
type EventPublishedEmailData struct {
	To          string
	Title       string
	DateTime    string
	Location    string
	EventURL    string
	PublishedAt time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventPublished(ctx context.Context, data *EventPublishedEmailData) error
}
