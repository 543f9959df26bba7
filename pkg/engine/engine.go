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

// Package engine applies a patch registry to a text.
package engine

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/patch"
)

// Engine applies registries to texts. The zero value is usable and silent.
type Engine struct {
	logger zerolog.Logger
}

// New creates an engine that traces every outcome to logger
func New(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Apply applies every spec of reg to text using a silent engine
func Apply(text string, reg *patch.Registry) (string, *Report) {
	e := Engine{logger: zerolog.Nop()}
	return e.Apply(text, reg)
}

// Apply runs every spec of reg, in registration order, against text.
// Each spec sees the text produced by the specs before it. An outcome other
// than StatusApplied never changes the text, and no outcome stops the run.
func (e *Engine) Apply(text string, reg *patch.Registry) (string, *Report) {
	report := &Report{}
	current := text

	for spec := range reg.All() {
		var outcome Outcome
		current, outcome = e.applyOne(current, spec)
		if outcome.Status == StatusApplied {
			report.Changed = true
		}

		ev := e.logger.Debug()
		if outcome.Err != nil {
			ev = e.logger.Warn().Err(outcome.Err)
		}
		ev.Str("patch", spec.ID).
			Str("strategy", spec.Strategy.Kind().String()).
			Str("status", outcome.Status.String()).
			Int("occurrences", outcome.Occurrences).
			Msg("patch evaluated")

		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.Text = current
	return current, report
}

func (e *Engine) applyOne(text string, spec *patch.Spec) (string, Outcome) {
	switch s := spec.Strategy.(type) {
	case patch.LiteralBlock:
		return applyLiteral(text, spec.ID, s)
	case *patch.PatternSubstitution:
		return applyPattern(text, spec.ID, s)
	default:
		return text, Outcome{PatchID: spec.ID, Status: StatusInvalid, Err: patch.ErrInvalidPatchSpec}
	}
}

// applyLiteral replaces Old only when it occurs exactly once
func applyLiteral(text, id string, lit patch.LiteralBlock) (string, Outcome) {
	n := countOverlapping(text, lit.Old)
	out := Outcome{PatchID: id, Occurrences: n}

	switch {
	case n == 0:
		out.Status = StatusNoMatch
		return text, out
	case n > 1:
		out.Status = StatusAmbiguousMatch
		return text, out
	}

	i := strings.Index(text, lit.Old)
	out.Status = StatusApplied
	return text[:i] + lit.New + text[i+len(lit.Old):], out
}

// applyPattern replaces every non-overlapping match of the pattern
func applyPattern(text, id string, pat *patch.PatternSubstitution) (string, Outcome) {
	out := Outcome{PatchID: id}

	re, err := pat.Compile()
	if err != nil {
		out.Status = StatusInvalid
		out.Err = err
		return text, out
	}

	out.Occurrences = len(re.FindAllStringIndex(text, -1))
	if out.Occurrences == 0 {
		out.Status = StatusNoMatch
		return text, out
	}

	out.Status = StatusApplied
	return re.ReplaceAllString(text, pat.Template()), out
}

// countOverlapping counts occurrences of sub in s, including overlapping ones
func countOverlapping(s, sub string) int {
	n := 0
	for start := 0; start <= len(s)-len(sub); {
		i := strings.Index(s[start:], sub)
		if i < 0 {
			break
		}
		n++
		start += i + 1
	}
	return n
}
