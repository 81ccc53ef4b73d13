package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"isoworld/internal/config"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"--port", "2300", "--seed", "9", "--key", "k"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{port: 2300, seed: 9, keyFile: "k"}, o)

	_, err = parseFlags([]string{"--bogus"}, io.Discard)
	assert.Error(t, err)
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isoworld.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 2400\n  fps: 30\n"), 0o600))

	cfg, err := loadConfig(options{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, 2400, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.FPS)

	cfg, err = loadConfig(options{configPath: path, port: 2500, keyFile: "other_key"})
	require.NoError(t, err)
	assert.Equal(t, 2500, cfg.Server.Port)
	assert.Equal(t, "other_key", cfg.Server.HostKey)

	cfg, err = loadConfig(options{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  fps: 0\n"), 0o600))
	_, err := loadConfig(options{configPath: path})
	assert.True(t, eris.Is(err, config.ErrInvalid))
}

func TestHostKeyIsPersistedAndReloaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")

	first, err := loadOrCreateHostKey(path, zap.NewNop())
	require.NoError(t, err)
	require.FileExists(t, path)

	second, err := loadOrCreateHostKey(path, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first.PublicKey().Marshal(), second.PublicKey().Marshal()))
}
