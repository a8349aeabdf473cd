package statement

import (
	"fmt"
	"strings"
	"time"
)

// BaseName derives the stable identity for all output artifacts belonging to
// one statement: "{CardNetwork} {Issuer} {YYYY-MM}". The year-month comes
// from the closing date; a closing date that does not parse as YYYY-MM-DD
// degrades to its first 7 characters, or "0000-00" when shorter. BaseName
// never fails: two extractions of the same statement must always agree on
// the name.
func BaseName(meta Metadata) string {
	var yearMonth string
	if t, err := time.Parse("2006-01-02", meta.ClosingDate); err == nil {
		yearMonth = t.Format("2006-01")
	} else if len(meta.ClosingDate) >= 7 {
		yearMonth = meta.ClosingDate[:7]
	} else {
		yearMonth = "0000-00"
	}

	network := strings.TrimSpace(meta.CardNetwork)
	issuer := strings.TrimSpace(meta.Issuer)

	return fmt.Sprintf("%s %s %s", network, issuer, yearMonth)
}
