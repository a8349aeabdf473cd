package writer

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// AppendErrorLog appends a timestamped failure block for source to the
// category error log. The log is append-only and never rotated or truncated
// by this system.
func AppendErrorLog(path, source string, failure error) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("writer.AppendErrorLog: %w", err)
	}
	defer f.Close()

	block := fmt.Sprintf("\n%s\n[%s] Error processing %s\n%v\n",
		strings.Repeat("=", 60),
		time.Now().Format("2006-01-02 15:04:05"),
		source,
		failure,
	)
	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("writer.AppendErrorLog: %w", err)
	}
	return nil
}
