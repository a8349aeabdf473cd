// Package pdfcrypt wraps the external qpdf tool for the detect→decrypt
// two-step on password-protected statement PDFs.
package pdfcrypt

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DecryptionError reports a failed decryption attempt: wrong or missing
// password, a corrupt PDF, or a tool failure.
type DecryptionError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *DecryptionError) Error() string {
	msg := fmt.Sprintf("pdfcrypt: decrypting %s", e.Path)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecryptionError) Unwrap() error { return e.Err }

// Tool shells out to a qpdf binary.
type Tool struct {
	binPath string
}

// NewTool returns a Tool using the given qpdf binary path.
func NewTool(binPath string) *Tool {
	if binPath == "" {
		binPath = "qpdf"
	}
	return &Tool{binPath: binPath}
}

// IsEncrypted reports whether the PDF at path is password-protected.
// qpdf --is-encrypted exits 0 for encrypted files, nonzero otherwise.
func (t *Tool) IsEncrypted(ctx context.Context, path string) bool {
	cmd := exec.CommandContext(ctx, t.binPath, "--is-encrypted", path)
	return cmd.Run() == nil
}

// Decrypt writes a password-free copy of src to dst.
func (t *Tool) Decrypt(ctx context.Context, src, dst, password string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binPath,
		"--decrypt",
		"--password="+password,
		src,
		dst,
	)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &DecryptionError{Path: src, Stderr: stderr.String(), Err: err}
	}
	return nil
}
