package writer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")

	require.NoError(t, AppendErrorLog(path, "statement_20250310.eml", errors.New("boom")))
	require.NoError(t, AppendErrorLog(path, "statement_20250311.eml", errors.New("bang")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Equal(t, 2, strings.Count(content, strings.Repeat("=", 60)), "one separator per entry")
	assert.Contains(t, content, "Error processing statement_20250310.eml")
	assert.Contains(t, content, "boom")
	assert.Contains(t, content, "Error processing statement_20250311.eml")
	assert.Contains(t, content, "bang")

	// Append-only: the first entry survives the second write.
	first := strings.Index(content, "boom")
	second := strings.Index(content, "bang")
	assert.Less(t, first, second)
}
