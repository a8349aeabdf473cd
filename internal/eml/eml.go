// Package eml extracts processable content from raw RFC 5322 messages.
package eml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jordan-wright/email"
)

var (
	// ErrNoAttachment is returned when a message carries no PDF attachment.
	ErrNoAttachment = errors.New("eml: no PDF attachment found")
	// ErrNoContent is returned when a message has neither an HTML nor a
	// plain-text body.
	ErrNoContent = errors.New("eml: no usable body content found")
)

// PDF is one PDF attachment in document order.
type PDF struct {
	Filename string
	Data     []byte
}

// Body is the textual content of a message. HTML is preferred when present.
type Body struct {
	HTML string
	Text string
}

// Parse reads a raw message once so both attachments and body can be
// inspected without re-reading the source.
type Message struct {
	parsed *email.Email
}

// Parse parses a raw .eml byte stream.
func Parse(r io.Reader) (*Message, error) {
	e, err := email.NewEmailFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("eml.Parse: %w", err)
	}
	return &Message{parsed: e}, nil
}

// PDFAttachments returns every attachment classified as a PDF by content
// type or filename extension, in document order.
func (m *Message) PDFAttachments() ([]PDF, error) {
	var pdfs []PDF
	for i, att := range m.parsed.Attachments {
		if att == nil || len(att.Content) == 0 {
			continue
		}
		if !isPDF(att.Header.Get("Content-Type"), att.Filename) {
			continue
		}
		name := att.Filename
		if name == "" {
			name = fmt.Sprintf("attachment_%d.pdf", i)
		}
		pdfs = append(pdfs, PDF{Filename: name, Data: att.Content})
	}
	if len(pdfs) == 0 {
		return nil, ErrNoAttachment
	}
	return pdfs, nil
}

// Body returns the message body, HTML if present, else plain text.
func (m *Message) Body() (*Body, error) {
	html := strings.TrimSpace(string(m.parsed.HTML))
	text := strings.TrimSpace(string(m.parsed.Text))
	if html == "" && text == "" {
		return nil, ErrNoContent
	}
	return &Body{HTML: html, Text: text}, nil
}

func isPDF(contentType, filename string) bool {
	if ct := strings.ToLower(contentType); strings.HasPrefix(ct, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
