package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/glabrego/coinboard/internal/config"
)

// New builds the application logger. Output goes to a file because the
// terminal is owned by the TUI; "stdout" and "stderr" are accepted for the
// CLI subcommands.
func New(cfg config.LoggingConfig) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		logger.SetFormatter(&TextFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	}

	output, closer, err := openOutput(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(output)
	logger.SetReportCaller(level >= logrus.DebugLevel)

	return logger, closer, nil
}

// Discard returns a logger that drops everything, for tests and for callers
// that were not handed one.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// WithComponent tags entries with the emitting package.
func WithComponent(logger *logrus.Logger, component string) *logrus.Entry {
	return logger.WithField("component", component)
}

// TextFormatter writes one plain line per entry with fields sorted by key.
// No colour codes: the log file is read with less and grep.
type TextFormatter struct {
	TimestampFormat string
}

func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(entry.Time.Format(f.TimestampFormat))
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(entry.Level.String()))
	if entry.HasCaller() {
		fmt.Fprintf(&b, " [%s]", formatCaller(entry.Caller))
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" |")
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
		}
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func formatCaller(caller *runtime.Frame) string {
	_, file := filepath.Split(caller.File)
	funcName := caller.Function
	if idx := strings.LastIndex(funcName, "."); idx >= 0 {
		funcName = funcName[idx+1:]
	}
	return fmt.Sprintf("%s:%d %s", file, caller.Line, funcName)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openOutput(path string) (io.Writer, io.Closer, error) {
	switch path {
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	case "", "discard":
		return io.Discard, nopCloser{}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory %s: %w", dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, file, nil
}
