// Package alerts writes short status lines for CLI commands, such as
// "credentials saved" or "fetch failed", to stderr.
package alerts

import (
	"fmt"
	"io"
	"strings"
)

// Level is the severity of an alert.
type Level int

// Alert levels.
const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelSuccess
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	}
	return fmt.Sprintf("unknown(%d)", l)
}

// Icon returns the marker printed before the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return "✗"
	case LevelWarning:
		return "!"
	case LevelSuccess:
		return "✓"
	}
	return "•"
}

// Alert is one status line with optional indented details.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// New creates an alert.
func New(level Level, format string, args ...any) *Alert {
	return &Alert{Level: level, Message: fmt.Sprintf(format, args...)}
}

// WithError attaches the underlying error.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails appends detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String renders the alert.
func (a *Alert) String() string {
	var b strings.Builder
	b.WriteString(a.Level.Icon())
	b.WriteByte(' ')
	b.WriteString(a.Message)
	if a.Err != nil {
		b.WriteString(": ")
		b.WriteString(a.Err.Error())
	}
	for _, d := range a.Details {
		b.WriteString("\n  ")
		b.WriteString(d)
	}
	return b.String()
}

// Writer prints alerts. In quiet mode only warnings and errors are written.
type Writer struct {
	out   io.Writer
	quiet bool
}

// NewWriter creates a Writer for out.
func NewWriter(out io.Writer, quiet bool) *Writer {
	return &Writer{out: out, quiet: quiet}
}

// Write prints a.
func (w *Writer) Write(a *Alert) {
	if w.quiet && a.Level > LevelWarning {
		return
	}
	_, _ = fmt.Fprintln(w.out, a.String())
}

// Success prints a success alert.
func (w *Writer) Success(format string, args ...any) {
	w.Write(New(LevelSuccess, format, args...))
}

// Info prints an info alert.
func (w *Writer) Info(format string, args ...any) {
	w.Write(New(LevelInfo, format, args...))
}

// Warning prints a warning alert.
func (w *Writer) Warning(format string, args ...any) {
	w.Write(New(LevelWarning, format, args...))
}
