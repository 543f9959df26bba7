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

package engine

// Status is the result of attempting one spec against one text
type Status int

const (
	StatusApplied Status = iota
	StatusNoMatch
	StatusAmbiguousMatch
	StatusInvalid
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusNoMatch:
		return "no-match"
	case StatusAmbiguousMatch:
		return "ambiguous"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Outcome describes what happened to a single spec
type Outcome struct {
	PatchID     string // Id of the spec this outcome belongs to
	Status      Status // What happened
	Occurrences int    // Matches found before the replacement policy was applied
	Err         error  // Set only when Status is StatusInvalid
}

// Report is the ordered list of outcomes for one Apply call
type Report struct {
	Outcomes []Outcome
	Text     string
	Changed  bool
}

// Counts returns the number of outcomes per status
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int, 4)
	for _, o := range r.Outcomes {
		counts[o.Status]++
	}
	return counts
}

// AllApplied reports whether every outcome is StatusApplied
func (r *Report) AllApplied() bool {
	for _, o := range r.Outcomes {
		if o.Status != StatusApplied {
			return false
		}
	}
	return true
}

// Pending returns the outcomes that did not apply
func (r *Report) Pending() []Outcome {
	var pending []Outcome
	for _, o := range r.Outcomes {
		if o.Status != StatusApplied {
			pending = append(pending, o)
		}
	}
	return pending
}

// Outcome returns the outcome for a patch id
func (r *Report) Outcome(id string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.PatchID == id {
			return o, true
		}
	}
	return Outcome{}, false
}
