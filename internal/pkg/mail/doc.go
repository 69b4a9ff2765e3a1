// Package mail abstracts outbound email delivery.
//
// The Message type is provider-agnostic; the SMTP implementation builds MIME
// bodies by hand so inline images (the enrollment QR code) can be referenced
// from HTML via Content-ID without extra dependencies.
package mail
