package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingSecretReturnsError(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store:\n  driver: memory\n"), 0o600))

	err := run(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestRun_MalformedConfigReturnsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	err := run(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load configuration")
}
