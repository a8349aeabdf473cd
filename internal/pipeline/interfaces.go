package pipeline

import (
	"context"

	"github.com/dvloznov/mail-processors/internal/mailbridge"
	"github.com/dvloznov/mail-processors/internal/statement"
	"github.com/dvloznov/mail-processors/internal/taxi"
)

// Extractor is the external model capability: given document bytes or text
// plus an implied schema, return a typed record or a distinguishable
// extraction failure.
type Extractor interface {
	Statement(ctx context.Context, pdfBytes []byte) (*statement.Extraction, error)
	Trip(ctx context.Context, content string) (*taxi.Trip, error)
}

// Decryptor is the external decryption capability over files on disk.
type Decryptor interface {
	IsEncrypted(ctx context.Context, path string) bool
	Decrypt(ctx context.Context, src, dst, password string) error
}

// MailBridge mutates source-message state. All operations are best-effort;
// a false return never fails the pipeline.
type MailBridge interface {
	MarkReadAndMove(ctx context.Context, messageID, folder string) bool
	MarkRead(ctx context.Context, messageID string) bool
	Flag(ctx context.Context, messageID string, level mailbridge.FlagLevel) bool
}

// Normalizer converts an HTML body into model-ready text.
type Normalizer interface {
	FromHTML(html string) (string, error)
}
