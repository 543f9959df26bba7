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

package config

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Literal is an exact old->new block
type Literal struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// 🔍 Pattern is a regular expression and its replacement template
type Pattern struct {
	Match    string `json:"match" yaml:"match"`
	Template string `json:"template" yaml:"template"`
}

// 🩹 Patch is one declared patch
type Patch struct {
	ID      string   `json:"id" yaml:"id"`
	Files   []string `json:"files,omitempty" yaml:"files,omitempty"` // Optional globs limiting which files this patch touches
	Literal *Literal `json:"literal,omitempty" yaml:"literal,omitempty"`
	Pattern *Pattern `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// 📚 Config represents a complete patch set
type Config struct {
	Files   []string `json:"files,omitempty" yaml:"files,omitempty"`     // Globs selecting target files
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"` // Globs removing files from the selection
	Patches []Patch  `json:"patches" yaml:"patches"`

	location string

	once   sync.Once
	reg    *patch.Registry
	regErr error
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Patches) == 0 {
		return errors.Errorf("at least one patch is required")
	}

	for _, g := range append(append([]string{}, cfg.Files...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(g) {
			return errors.Errorf("invalid glob %q", g)
		}
	}

	for i, p := range cfg.Patches {
		if p.Literal != nil && p.Pattern != nil {
			return errors.Errorf("patches[%d] (%s): only one of literal or pattern may be set", i, p.ID)
		}
		if p.Literal == nil && p.Pattern == nil {
			return errors.Errorf("patches[%d] (%s): one of literal or pattern is required", i, p.ID)
		}
		for _, g := range p.Files {
			if !doublestar.ValidatePattern(g) {
				return errors.Errorf("patches[%d] (%s): invalid glob %q", i, p.ID, g)
			}
		}
	}

	// registration enforces the remaining invariants (ids, empty targets)
	if _, err := cfg.Registry(); err != nil {
		return err
	}

	return nil
}

// 📦 Registry returns a registry holding every patch in declaration order.
// It is built once; registries from RegistryFor share its specs, so a
// pattern is compiled at most once per config.
func (cfg *Config) Registry() (*patch.Registry, error) {
	cfg.once.Do(func() {
		specs := make([]*patch.Spec, 0, len(cfg.Patches))
		for _, p := range cfg.Patches {
			switch {
			case p.Literal != nil:
				specs = append(specs, patch.Literal(p.ID, p.Literal.Old, p.Literal.New))
			case p.Pattern != nil:
				specs = append(specs, patch.Pattern(p.ID, p.Pattern.Match, p.Pattern.Template))
			default:
				specs = append(specs, &patch.Spec{ID: p.ID})
			}
		}
		reg, err := patch.NewRegistry(specs...)
		if err != nil {
			cfg.regErr = errors.Errorf("building registry: %w", err)
			return
		}
		cfg.reg = reg
	})
	return cfg.reg, cfg.regErr
}

// 📦 RegistryFor returns a registry holding the patches whose file filter
// matches rel, a slash separated path relative to Dir.
func (cfg *Config) RegistryFor(rel string) (*patch.Registry, error) {
	all, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	rel = filepath.ToSlash(rel)
	files := make(map[string][]string, len(cfg.Patches))
	for _, p := range cfg.Patches {
		files[p.ID] = p.Files
	}
	return all.Filter(func(s *patch.Spec) bool {
		return MatchAny(files[s.ID], rel, true)
	}), nil
}

// 📁 Dir returns the directory globs are resolved against
func (cfg *Config) Dir() string {
	if cfg.location == "" {
		return "."
	}
	return filepath.Dir(cfg.location)
}

// 📝 Location returns the path the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 MatchAny reports whether path matches any glob. An empty glob list
// matches everything when emptyMatches is set.
func MatchAny(globs []string, path string, emptyMatches bool) bool {
	if len(globs) == 0 {
		return emptyMatches
	}
	for _, g := range globs {
		if ok, err := doublestar.Match(g, path); err == nil && ok {
			return true
		}
	}
	return false
}
