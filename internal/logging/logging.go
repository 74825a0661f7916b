package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dvdk01/page-change-monitor/internal/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger from opts that writes to stderr and, when opts.File is
// set, to a rotated log file. The returned closer flushes the file.
func New(opts config.LogOptions) (*log.Logger, io.Closer, error) {
	return NewWithWriter(opts, os.Stderr)
}

// NewWithWriter is New with console output sent to console instead of stderr.
func NewWithWriter(opts config.LogOptions, console io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := log.New()
	logger.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, nil, fmt.Errorf("unknown log format '%s'", opts.Format)
	}

	if opts.File == "" {
		logger.SetOutput(console)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
	}
	logger.SetOutput(io.MultiWriter(console, file))

	return logger, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
