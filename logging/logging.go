// Package logging builds the file-backed zap logger shared by the binaries
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultDir     = "logs"
	DefaultFile    = "antcolony.log"
	DefaultMaxSize = 10 * 1024 * 1024
)

// Config selects where and how much to log
type Config struct {
	// Dir holds the log file; empty disables logging entirely
	Dir  string
	File string

	// Level is a zap level name: debug, info, warn, error
	Level string

	// MaxSize rotates an existing file larger than this to <file>.1 at startup
	// Zero rotates any non-empty file
	MaxSize int64
}

// DefaultConfig logs info and above to logs/antcolony.log
func DefaultConfig() Config {
	return Config{
		Dir:     DefaultDir,
		File:    DefaultFile,
		Level:   "info",
		MaxSize: DefaultMaxSize,
	}
}

// Path returns the active log file path
func (c Config) Path() string {
	name := c.File
	if name == "" {
		name = DefaultFile
	}
	return filepath.Join(c.Dir, name)
}

// New builds the logger; with no Dir it returns a no-op logger
// Output never goes to stdout or stderr since the viewer owns the terminal
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Dir == "" {
		return zap.NewNop(), nil
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := cfg.Path()
	if err := rotate(path, cfg.MaxSize); err != nil {
		return nil, err
	}

	zc := zap.Config{
		Level:       level,
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// rotate moves an oversized previous log to <path>.1, replacing any older rotation
func rotate(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat log: %w", err)
	}
	if info.Size() == 0 || info.Size() <= maxSize {
		return nil
	}
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	return nil
}
