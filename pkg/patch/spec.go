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

package patch

import (
	"regexp"
	"sync"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidPatchSpec is returned when a spec is structurally invalid
	ErrInvalidPatchSpec = errors.Base("invalid patch spec")

	// ErrPatternCompile is returned when a pattern cannot be compiled
	ErrPatternCompile = errors.Base("pattern compile error")
)

// Kind identifies the match strategy of a spec
type Kind int

const (
	KindLiteralBlock Kind = iota
	KindPatternSubstitution
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindLiteralBlock:
		return "literal"
	case KindPatternSubstitution:
		return "pattern"
	default:
		return "unknown"
	}
}

// Strategy is the tagged variant describing how a spec finds and rewrites text.
// The only implementations are LiteralBlock and PatternSubstitution.
type Strategy interface {
	Kind() Kind
	target() string
}

// LiteralBlock matches Old as an exact substring and replaces it with New.
type LiteralBlock struct {
	Old string
	New string
}

func (LiteralBlock) Kind() Kind { return KindLiteralBlock }

func (l LiteralBlock) target() string { return l.Old }

// PatternSubstitution replaces every match of a pattern with a template.
// The template may reference capture groups as $1, ${1} or ${name}.
// Its fields are fixed at construction so one value can be shared.
type PatternSubstitution struct {
	pattern  string
	template string

	once sync.Once
	re   *regexp.Regexp
	err  error
}

// NewPatternSubstitution creates a pattern strategy
func NewPatternSubstitution(pattern, template string) *PatternSubstitution {
	return &PatternSubstitution{pattern: pattern, template: template}
}

func (*PatternSubstitution) Kind() Kind { return KindPatternSubstitution }

func (p *PatternSubstitution) target() string { return p.pattern }

// Pattern returns the regular expression source
func (p *PatternSubstitution) Pattern() string { return p.pattern }

// Template returns the replacement template
func (p *PatternSubstitution) Template() string { return p.template }

// Compile returns the compiled pattern. Compilation happens on first use and
// the result (or the failure) is cached for every later caller.
func (p *PatternSubstitution) Compile() (*regexp.Regexp, error) {
	p.once.Do(func() {
		re, err := regexp.Compile(p.pattern)
		if err != nil {
			p.err = errors.Errorf("%w: %q: %s", ErrPatternCompile, p.pattern, err.Error())
			return
		}
		p.re = re
	})
	return p.re, p.err
}

// Spec is one unit of transformation
type Spec struct {
	ID       string
	Strategy Strategy
}

// Literal creates a spec with a LiteralBlock strategy
func Literal(id, oldText, newText string) *Spec {
	return &Spec{
		ID:       id,
		Strategy: LiteralBlock{Old: oldText, New: newText},
	}
}

// Pattern creates a spec with a PatternSubstitution strategy
func Pattern(id, pattern, template string) *Spec {
	return &Spec{
		ID:       id,
		Strategy: NewPatternSubstitution(pattern, template),
	}
}

// Validate checks the structural invariants of a spec
func (s *Spec) Validate() error {
	if s == nil {
		return errors.Errorf("%w: spec is nil", ErrInvalidPatchSpec)
	}
	if s.ID == "" {
		return errors.Errorf("%w: id is required", ErrInvalidPatchSpec)
	}
	switch st := s.Strategy.(type) {
	case nil:
		return errors.Errorf("%w: %s: strategy is required", ErrInvalidPatchSpec, s.ID)
	case LiteralBlock:
	case *PatternSubstitution:
		if st == nil {
			return errors.Errorf("%w: %s: strategy is required", ErrInvalidPatchSpec, s.ID)
		}
	default:
		return errors.Errorf("%w: %s: unsupported strategy %T", ErrInvalidPatchSpec, s.ID, s.Strategy)
	}
	if s.Strategy.target() == "" {
		return errors.Errorf("%w: %s: %s match target is empty", ErrInvalidPatchSpec, s.ID, s.Strategy.Kind())
	}
	return nil
}
