package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var logFile *os.File

// InitLogger sets the global logrus level and formatter, writing to stderr.
func InitLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetOutput(os.Stderr)
	return nil
}

// SetOutputFile tees log output to path in addition to stderr. An empty
// path turns file logging off.
func SetOutputFile(path string) error {
	Close()

	if path == "" {
		logrus.SetOutput(os.Stderr)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logFile = f
	logrus.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// Close releases the log file, if any, and falls back to stderr.
func Close() {
	if logFile == nil {
		return
	}
	logrus.SetOutput(os.Stderr)
	_ = logFile.Close()
	logFile = nil
}
