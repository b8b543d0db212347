package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the append-only error log inside the data directory.
const FileName = "error.log"

// New creates a zap logger that appends to path. Stdout belongs to the
// launcher, so the file is the only sink. levelOverride (if non-empty)
// overrides the default "info" level: debug, info, warn, error.
func New(path string, levelOverride ...string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if len(levelOverride) > 0 && levelOverride[0] != "" {
		if err := level.UnmarshalText([]byte(levelOverride[0])); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelOverride[0], err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), level)

	// Sink write errors are discarded; logging must never fail a run.
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(io.Discard))), nil
}

// NewOrNop is New, falling back to a no-op logger when the file cannot be opened.
func NewOrNop(path string, levelOverride ...string) *zap.Logger {
	l, err := New(path, levelOverride...)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
