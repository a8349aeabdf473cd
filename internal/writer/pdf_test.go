package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyPDF(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "decrypted.pdf")
	dst := filepath.Join(dir, "Visa Interbank 2025-03.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.7 fake"), 0o600))

	copied, err := CopyPDF(src, dst)
	require.NoError(t, err)
	assert.True(t, copied)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(data))

	// Source stays in place.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestCopyPDF_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "decrypted.pdf")
	dst := filepath.Join(dir, "existing.pdf")
	require.NoError(t, os.WriteFile(src, []byte("new content"), 0o600))
	require.NoError(t, os.WriteFile(dst, []byte("original content"), 0o600))

	copied, err := CopyPDF(src, dst)
	require.NoError(t, err)
	assert.False(t, copied)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "original content", string(data), "existing destination must be preserved")
}

func TestCopyPDF_MissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := CopyPDF(filepath.Join(dir, "nope.pdf"), filepath.Join(dir, "out.pdf"))
	assert.Error(t, err)
}
