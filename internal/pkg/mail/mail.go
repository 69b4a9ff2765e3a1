package mail

import (
	"context"
	"io"
)

// Message represents an email payload.
type Message struct {
	// From is an optional explicit sender; fallback depends on implementation.
	From string
	// To lists required recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body; preferred when HTMLBody is empty.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
	// Inlines are images embedded in the HTML body via cid: references.
	Inlines []Inline
}

// Inline is an image attached for inline display.
type Inline struct {
	// ContentID is referenced from HTML as <img src="cid:ContentID">.
	ContentID string
	// ContentType is the MIME type, e.g. image/png.
	ContentType string
	// Data is the raw image bytes.
	Data []byte
}

// Mail abstracts an email provider (SMTP, third-party API, etc).
type Mail interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
