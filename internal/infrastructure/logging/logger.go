package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"fboard/internal/infrastructure/config"
)

// Logger is a logrus logger that may own a rotating log file
type Logger struct {
	*logrus.Logger
	closer io.Closer
}

// New builds the application logger. Entries go to the rotating log file;
// unless quiet is set, warnings and errors are also echoed to stderr.
func New(cfg config.LoggingConfig, quiet bool) (*Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	path := cfg.File
	if path == "" {
		path = config.DefaultLogFile()
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(file)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	if !quiet {
		logger.AddHook(&stderrHook{
			writer:    os.Stderr,
			formatter: &logrus.TextFormatter{DisableTimestamp: true},
		})
	}

	return &Logger{Logger: logger, closer: file}, nil
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Logger{Logger: logger}
}

// Close releases the log file
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// stderrHook mirrors warnings and errors to the terminal
type stderrHook struct {
	writer    io.Writer
	formatter logrus.Formatter
}

func (h *stderrHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (h *stderrHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}
