// Package logging builds the zap loggers shared by the engines and viewers.
package logging

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	}
	return zap.InfoLevel, eris.Errorf("unknown log level %q", name)
}

// New returns a JSON logger writing to the given paths (stderr when empty).
func New(level string, paths ...string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}
	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(lvl),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      paths,
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "build logger")
	}
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger { return zap.NewNop() }

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
