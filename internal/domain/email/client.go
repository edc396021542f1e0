package email

import "context"

// Attachment is a named file carried by an outbound message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one outbound email with zero or more attachments.
type Message struct {
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Client defines an interface for sending email through a transport
// provider. This decouples the application logic from the specific
// provider API.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
