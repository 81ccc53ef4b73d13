package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zap.AtomicLevel{
		"":      zap.NewAtomicLevelAt(zap.InfoLevel),
		"DEBUG": zap.NewAtomicLevelAt(zap.DebugLevel),
		"warn":  zap.NewAtomicLevelAt(zap.WarnLevel),
		"error": zap.NewAtomicLevelAt(zap.ErrorLevel),
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want.Level(), got, name)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.log")
	l, err := New("debug", path)
	require.NoError(t, err)
	l.Debug("hello", zap.Int("n", 1))
	require.NoError(t, l.Sync())
	assert.FileExists(t, path)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
