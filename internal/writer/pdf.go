package writer

import (
	"fmt"
	"io"
	"os"
)

// CopyPDF copies the decrypted statement PDF to its base-name destination.
// A name collision is never resolved silently: when dst already exists the
// copy is skipped, copied is false and the source stays where it is so a
// human can sort it out.
func CopyPDF(src, dst string) (copied bool, err error) {
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return false, fmt.Errorf("writer.CopyPDF: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return false, fmt.Errorf("writer.CopyPDF: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dst)
		return false, fmt.Errorf("writer.CopyPDF: %w", err)
	}
	return true, nil
}
