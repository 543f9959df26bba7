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

package operation

import (
	"github.com/walteh/patchrc/pkg/engine"
	"github.com/walteh/patchrc/pkg/status"
)

// 📄 FileResult is the result of patching one file
type FileResult struct {
	Path    string         // Path relative to the patch set directory
	Report  *engine.Report // Nil when the file could not be read or was skipped
	Changed bool           // Whether patching changed the text
	Written bool           // Whether the file was written back
	Diff    string         // Unified diff, when requested and the text changed
	Skipped string         // Reason the file was not patched, if any
	Err     error          // I/O failure, if any
}

// WouldChange reports whether applying the patches changes the file's text
func (f FileResult) WouldChange() bool {
	return f.Changed
}

// State returns a short human readable state for the file
func (f FileResult) State(dryRun bool) string {
	switch {
	case f.Err != nil:
		return "failed"
	case f.Skipped != "":
		return "skipped (" + f.Skipped + ")"
	case f.Written:
		return "patched"
	case dryRun && f.WouldChange():
		return "would patch"
	default:
		return "unchanged"
	}
}

// 📊 Summary holds the results of a run
type Summary struct {
	Results []FileResult
}

// Counts returns the number of outcomes per status across every file
func (s *Summary) Counts() map[engine.Status]int {
	counts := make(map[engine.Status]int, 4)
	for _, f := range s.Results {
		if f.Report == nil {
			continue
		}
		for st, n := range f.Report.Counts() {
			counts[st] += n
		}
	}
	return counts
}

// HasPending reports whether any patch on any file did not apply
func (s *Summary) HasPending() bool {
	for _, f := range s.Results {
		if f.Report != nil && len(f.Report.Pending()) > 0 {
			return true
		}
	}
	return false
}

// HasInvalid reports whether any patch was invalid
func (s *Summary) HasInvalid() bool {
	return s.Counts()[engine.StatusInvalid] > 0
}

// Changed returns the files whose text was (or would be) changed
func (s *Summary) Changed() []FileResult {
	var out []FileResult
	for _, f := range s.Results {
		if f.WouldChange() {
			out = append(out, f)
		}
	}
	return out
}

// Rows converts the summary for status.RenderSummary
func (s *Summary) Rows(dryRun bool) []status.SummaryRow {
	rows := make([]status.SummaryRow, 0, len(s.Results))
	for _, f := range s.Results {
		row := status.SummaryRow{Path: f.Path, State: f.State(dryRun)}
		if f.Report != nil {
			c := f.Report.Counts()
			row.Applied = c[engine.StatusApplied]
			row.NoMatch = c[engine.StatusNoMatch]
			row.Ambiguous = c[engine.StatusAmbiguousMatch]
			row.Invalid = c[engine.StatusInvalid]
		}
		rows = append(rows, row)
	}
	return rows
}
