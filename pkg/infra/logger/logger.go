package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

type Options struct {
	Level  string
	Format string
	// File, when set, receives a copy of every entry through an async writer.
	File string
}

// NewLogger builds the process logger. The returned close func flushes the
// file writer, if any, and is safe to call when File is empty.
func NewLogger(opts Options) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch strings.ToLower(opts.Format) {
	case FormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "time",
				logrus.FieldKeyMsg:  "msg",
			},
		})
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	if opts.File == "" {
		return logger, func() {}, nil
	}

	path := filepath.Clean(opts.File)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	writer, err := NewAsyncFileWriter(path, 32*1024)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.AddHook(&writerHook{out: writer})
	return logger, writer.Close, nil
}

// writerHook mirrors formatted entries into out.
type writerHook struct {
	out io.Writer
}

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.out.Write(line)
	return err
}

func (h *writerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
