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

package status

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// FileFormatter defines how file results and progress should be formatted
type FileFormatter interface {
	// FormatFileResult formats the one-line result of patching a file
	FormatFileResult(path string, written, wouldChange bool, err error) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileResult formats a file result message with emojis
func (f *DefaultFileFormatter) FormatFileResult(path string, written, wouldChange bool, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("❌ Failed %s", path)
	case written:
		return fmt.Sprintf("📝 Patched %s", path)
	case wouldChange:
		return fmt.Sprintf("🔍 Would patch %s", path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

// 📊 SummaryRow is one file's line in the summary table
type SummaryRow struct {
	Path      string
	Applied   int
	NoMatch   int
	Ambiguous int
	Invalid   int
	State     string // patched, would patch, unchanged or failed
}

// 📊 RenderSummary draws the end-of-run table
func RenderSummary(w io.Writer, rows []SummaryRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Applied", "No Match", "Ambiguous", "Invalid", "State"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	var applied, noMatch, ambiguous, invalid int
	for _, r := range rows {
		table.Append([]string{
			r.Path,
			strconv.Itoa(r.Applied),
			strconv.Itoa(r.NoMatch),
			strconv.Itoa(r.Ambiguous),
			strconv.Itoa(r.Invalid),
			r.State,
		})
		applied += r.Applied
		noMatch += r.NoMatch
		ambiguous += r.Ambiguous
		invalid += r.Invalid
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d files", len(rows)),
		strconv.Itoa(applied),
		strconv.Itoa(noMatch),
		strconv.Itoa(ambiguous),
		strconv.Itoa(invalid),
		"",
	})

	table.Render()
}
