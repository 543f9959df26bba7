// Package diff renders line diffs between a file before and after patching.
package diff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type line struct {
	op    byte // ' ', '-' or '+'
	text  string
	oldNo int
	newNo int
	noEOL bool // last line of a text without a trailing newline
}

// Unified returns a unified diff of before and after with context lines of
// surrounding text per hunk. It returns "" when the texts are equal.
func Unified(path, before, after string, context int) string {
	if before == after {
		return ""
	}
	if context < 0 {
		context = 0
	}

	lines := diffLines(before, after)

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range hunks(lines, context) {
		writeHunk(&b, lines[h[0]:h[1]])
	}
	return b.String()
}

// Colorize colors a unified diff for terminal output
func Colorize(unified string) string {
	var b strings.Builder
	for _, l := range strings.SplitAfter(unified, "\n") {
		switch {
		case l == "":
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			b.WriteString(color.New(color.Bold).Sprint(l))
		case strings.HasPrefix(l, "@@"):
			b.WriteString(color.New(color.FgCyan).Sprint(l))
		case strings.HasPrefix(l, "+"):
			b.WriteString(color.New(color.FgGreen).Sprint(l))
		case strings.HasPrefix(l, "-"):
			b.WriteString(color.New(color.FgRed).Sprint(l))
		default:
			b.WriteString(l)
		}
	}
	return b.String()
}

func diffLines(before, after string) []line {
	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var out []line
	oldNo, newNo := 1, 1
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			l := line{
				text:  strings.TrimSuffix(text, "\n"),
				oldNo: oldNo,
				newNo: newNo,
				noEOL: !strings.HasSuffix(text, "\n"),
			}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				l.op = ' '
				oldNo++
				newNo++
			case diffmatchpatch.DiffDelete:
				l.op = '-'
				oldNo++
			case diffmatchpatch.DiffInsert:
				l.op = '+'
				newNo++
			}
			out = append(out, l)
		}
	}
	return out
}

// splitLines splits s into lines that keep their newline
func splitLines(s string) []string {
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// hunks returns [start, end) ranges of lines covering every change plus context
func hunks(lines []line, context int) [][2]int {
	var out [][2]int
	for i, l := range lines {
		if l.op == ' ' {
			continue
		}
		start := max(i-context, 0)
		end := min(i+context+1, len(lines))
		if n := len(out); n > 0 && start <= out[n-1][1] {
			out[n-1][1] = max(out[n-1][1], end)
			continue
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

func writeHunk(b *strings.Builder, lines []line) {
	oldStart, newStart := lines[0].oldNo, lines[0].newNo
	var oldCount, newCount int
	for _, l := range lines {
		if l.op != '+' {
			oldCount++
		}
		if l.op != '-' {
			newCount++
		}
	}
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}

	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, l := range lines {
		b.WriteByte(l.op)
		b.WriteString(l.text)
		b.WriteByte('\n')
		if l.noEOL {
			b.WriteString("\\ No newline at end of file\n")
		}
	}
}
