package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log rotation overrides
const (
	EnvLogMaxSize    = "GITEXEC_LOG_MAX_SIZE"
	EnvLogMaxBackups = "GITEXEC_LOG_MAX_BACKUPS"
	EnvLogMaxAge     = "GITEXEC_LOG_MAX_AGE"
)

// messageHandler writes the bare message, one per line
type messageHandler struct {
	writer io.Writer
	level  slog.Leveler
	quiet  *bool
}

func (h *messageHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *messageHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *messageHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *messageHandler) WithGroup(_ string) slog.Handler {
	return h
}

func newRotatingWriter(logFilePath string) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
	}

	if v, err := strconv.Atoi(os.Getenv(EnvLogMaxSize)); err == nil && v > 0 {
		w.MaxSize = v
	}
	if v, err := strconv.Atoi(os.Getenv(EnvLogMaxBackups)); err == nil && v >= 0 {
		w.MaxBackups = v
	}
	if v, err := strconv.Atoi(os.Getenv(EnvLogMaxAge)); err == nil && v > 0 {
		w.MaxAge = v
	}
	return w
}

// fanoutHandler sends each record to every handler that accepts it
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: handlers}
}

// Options configures a Splog
type Options struct {
	// Out receives user-facing messages. Defaults to os.Stdout.
	Out io.Writer
	// Err receives git command traces in verbose mode. Defaults to os.Stderr.
	Err io.Writer
	// LogFile enables a rotating log file that records everything.
	LogFile string
	// Verbose enables debug messages and command traces on the console.
	Verbose bool
}

// Splog writes user-facing output and the git command trace
type Splog struct {
	logger        *slog.Logger
	commandLogger *slog.Logger
	writer        io.Writer
	logWriter     io.WriteCloser
	quiet         bool
}

// NewSplog creates a console-only splog. Debug output is enabled when
// DEBUG is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithOptions(Options{Verbose: os.Getenv("DEBUG") != ""})
	return splog
}

// NewSplogWithOptions creates a splog with optional file logging
func NewSplogWithOptions(opts Options) (*Splog, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	splog := &Splog{writer: opts.Out}

	consoleLevel := slog.LevelInfo
	if opts.Verbose {
		consoleLevel = slog.LevelDebug
	}
	handlers := []slog.Handler{&messageHandler{writer: opts.Out, level: consoleLevel, quiet: &splog.quiet}}

	var commandHandlers []slog.Handler
	if opts.Verbose {
		commandHandlers = append(commandHandlers, slog.NewTextHandler(opts.Err, &slog.HandlerOptions{
			Level:       slog.LevelDebug,
			ReplaceAttr: dropTime,
		}))
	}

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		rotating := newRotatingWriter(opts.LogFile)
		splog.logWriter = rotating

		fileHandler := slog.NewTextHandler(rotating, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
		commandHandlers = append(commandHandlers, fileHandler)
	}

	splog.logger = slog.New(&fanoutHandler{handlers: handlers})
	splog.commandLogger = slog.New(&fanoutHandler{handlers: commandHandlers})
	return splog, nil
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

// CommandLogger returns the logger the git runner traces commands to. It
// never writes to the user-facing output.
func (s *Splog) CommandLogger() *slog.Logger {
	return s.commandLogger
}

// SetQuiet suppresses console messages
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// IsQuiet returns whether console messages are suppressed
func (s *Splog) IsQuiet() bool {
	return s.quiet
}

func (s *Splog) log(level slog.Level, prefix, format string, args ...any) {
	msg := prefix + format
	if len(args) > 0 {
		msg = fmt.Sprintf(prefix+format, args...)
	}
	s.logger.Log(context.Background(), level, msg)
}

// Info writes an info message
func (s *Splog) Info(format string, args ...any) {
	s.log(slog.LevelInfo, "", format, args...)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...any) {
	s.log(slog.LevelWarn, "⚠️  ", format, args...)
}

// Error writes an error message
func (s *Splog) Error(format string, args ...any) {
	s.log(slog.LevelError, "❌ ", format, args...)
}

// Debug writes a message shown only in verbose mode
func (s *Splog) Debug(format string, args ...any) {
	s.log(slog.LevelDebug, "", format, args...)
}

// Tip writes a tip message
func (s *Splog) Tip(format string, args ...any) {
	s.log(slog.LevelInfo, "💡 ", format, args...)
}

// Page writes raw content, typically git output passed through unchanged
func (s *Splog) Page(content string) {
	if s.quiet {
		return
	}
	_, _ = fmt.Fprint(s.writer, content)
	if content != "" && content[len(content)-1] != '\n' {
		_, _ = fmt.Fprintln(s.writer)
	}
}

// Newline writes a newline
func (s *Splog) Newline() {
	_, _ = fmt.Fprintln(s.writer)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
