package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelMap = map[string]LogLevel{
	"debug": DEBUG,
	"info":  INFO,
	"warn":  WARN,
	"error": ERROR,
}

type Config struct {
	Level  string `json:"level"`
	Output string `json:"output"`
}

// Logger is a leveled wrapper around log.Logger. It is safe for concurrent
// use because log.Logger is.
type Logger struct {
	logger *log.Logger
	level  LogLevel
	closer io.Closer
}

// New builds a logger; Output is "stdout", "stderr" or a file path that is
// appended to.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = &Config{Level: "info", Output: "stderr"}
	}
	level, ok := levelMap[strings.ToLower(cfg.Level)]
	if !ok {
		level = INFO
	}

	var out io.Writer
	var closer io.Closer
	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}
	return &Logger{logger: log.New(out, "", log.LstdFlags), level: level, closer: closer}, nil
}

// NewWriter logs to w at the given level, without timestamps.
func NewWriter(w io.Writer, level LogLevel) *Logger {
	return &Logger{logger: log.New(w, "", 0), level: level}
}

// Discard drops everything.
func Discard() *Logger { return NewWriter(io.Discard, ERROR+1) }

func (l *Logger) Debug(format string, args ...any) { l.logf(DEBUG, "[DEBUG] ", format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.logf(INFO, "[INFO] ", format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.logf(WARN, "[WARN] ", format, args...) }
func (l *Logger) Error(format string, args ...any) { l.logf(ERROR, "[ERROR] ", format, args...) }

func (l *Logger) logf(level LogLevel, prefix, format string, args ...any) {
	if l == nil || l.level > level {
		return
	}
	l.logger.Printf(prefix+format, args...)
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
