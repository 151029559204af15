package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFindsConfigInSameDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("max_line_length = 120\n"), 0o644))

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 120, c.MaxLineLength)
}

func TestLoadWalksUpToAncestorDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("standard_indent = 2\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	c, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 2, c.StandardIndent)
}

func TestLoadReturnsZeroConfigWhenNoneFound(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Config{}, c)
}

func TestLoadReturnsErrorForMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("not = [valid toml"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
}

func TestMergeOverridesOnlyNonZeroFields(t *testing.T) {
	base := Config{MaxLineLength: 100, StandardIndent: 4, ContinuationIndent: 8}
	override := Config{MaxLineLength: 120}
	got := Merge(base, override)
	assert.Equal(t, Config{MaxLineLength: 120, StandardIndent: 4, ContinuationIndent: 8}, got)
}
