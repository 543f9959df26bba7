// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/engine"
)

// 🎨 Display configuration
const (
	patchIndent = 4  // spaces to indent patch entries
	idWidth     = 35 // Base width for patch id
	kindWidth   = 10 // Width for strategy
	statusWidth = 12 // Width for status text
)

// 🎯 PatchLine is a single patch outcome as printed on the console
type PatchLine struct {
	ID          string        // Patch id
	Strategy    string        // literal or pattern
	Status      engine.Status // Outcome status
	Occurrences int           // Matches found
	Err         error         // Compile error, if any
}

// 📦 FileRun is the result of patching one file, for logging
type FileRun struct {
	Path    string      // File path
	Written bool        // Whether the file was written back
	DryRun  bool        // Whether writes were suppressed
	Patches []PatchLine // One entry per patch, in order
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a logger that prints to console and mirrors every line to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func statusStyle(s engine.Status) (rune, color.Attribute) {
	switch s {
	case engine.StatusApplied:
		return '✓', color.FgGreen
	case engine.StatusNoMatch:
		return '•', color.FgCyan
	case engine.StatusAmbiguousMatch:
		return '?', color.FgYellow
	default:
		return '✗', color.FgRed
	}
}

// 📝 formatPatchLine formats a patch outcome for display
func (l *Logger) formatPatchLine(p PatchLine) string {
	symbol, symbolColor := statusStyle(p.Status)

	status := p.Status.String()
	if p.Occurrences > 1 {
		status = fmt.Sprintf("%s x%d", status, p.Occurrences)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", patchIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", idWidth, p.ID),
		color.New(color.FgBlue).Sprint(fmt.Sprintf("%-*s", kindWidth, p.Strategy)),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, status)))
}

// 📝 formatFileHeader formats the header line of a file run
func (l *Logger) formatFileHeader(f FileRun) string {
	state := "unchanged"
	stateColor := color.Faint
	switch {
	case f.Written:
		state = "patched"
		stateColor = color.FgGreen
	case f.DryRun && anyApplied(f.Patches):
		state = "would patch"
		stateColor = color.FgYellow
	}
	return fmt.Sprintf("%s %s %s %s",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(f.Path),
		color.New(color.Faint).Sprint("•"),
		color.New(stateColor).Sprint(state))
}

func anyApplied(lines []PatchLine) bool {
	for _, p := range lines {
		if p.Status == engine.StatusApplied {
			return true
		}
	}
	return false
}

// 📝 LogFileRun prints a file header and one line per patch as a single block
func (l *Logger) LogFileRun(ctx context.Context, f FileRun) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileHeader(f))
	for _, p := range f.Patches {
		fmt.Fprintln(l.console, l.formatPatchLine(p))

		ev := l.zlog.Info()
		if p.Err != nil {
			ev = l.zlog.Error().Err(p.Err)
		}
		ev.Str("file", f.Path).
			Str("patch", p.ID).
			Str("strategy", p.Strategy).
			Str("status", p.Status.String()).
			Int("occurrences", p.Occurrences).
			Msg("patch outcome")
	}

	l.zlog.Info().
		Str("file", f.Path).
		Bool("written", f.Written).
		Bool("dry_run", f.DryRun).
		Int("patches", len(f.Patches)).
		Msg("file complete")
}

// 📝 Print writes raw text to the console, such as a diff
func (l *Logger) Print(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, text)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("patchrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
