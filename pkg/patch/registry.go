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
	"iter"

	"gitlab.com/tozd/go/errors"
)

// Registry is an ordered, append-only collection of specs.
// Register stores its own copy of each spec, and All and Get hand out copies,
// so a registered spec cannot be changed from outside.
// Register must not be called concurrently with itself; once built, a
// registry may be read from any number of goroutines.
type Registry struct {
	specs []*Spec
	byID  map[string]int
}

// NewRegistry creates an empty registry, optionally registering specs in order
func NewRegistry(specs ...*Spec) (*Registry, error) {
	r := &Registry{byID: make(map[string]int)}
	for _, s := range specs {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on an invalid spec
func MustRegistry(specs ...*Spec) *Registry {
	r, err := NewRegistry(specs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register appends a spec. It fails with ErrInvalidPatchSpec when the spec is
// structurally invalid or its id is already taken.
func (r *Registry) Register(s *Spec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if r.byID == nil {
		r.byID = make(map[string]int)
	}
	if _, ok := r.byID[s.ID]; ok {
		return errors.Errorf("%w: duplicate id %q", ErrInvalidPatchSpec, s.ID)
	}
	stored := *s
	r.byID[stored.ID] = len(r.specs)
	r.specs = append(r.specs, &stored)
	return nil
}

// Filter returns a registry holding the specs for which keep returns true, in
// order. Strategies are shared with r, so compiled patterns are reused.
func (r *Registry) Filter(keep func(*Spec) bool) *Registry {
	out := &Registry{byID: make(map[string]int)}
	if r == nil {
		return out
	}
	for _, s := range r.specs {
		c := *s
		if !keep(&c) {
			continue
		}
		out.byID[s.ID] = len(out.specs)
		out.specs = append(out.specs, s)
	}
	return out
}

// All yields the registered specs in registration order.
// The sequence may be ranged over any number of times.
func (r *Registry) All() iter.Seq[*Spec] {
	var specs []*Spec
	if r != nil {
		specs = r.specs
	}
	return func(yield func(*Spec) bool) {
		for _, s := range specs {
			c := *s
			if !yield(&c) {
				return
			}
		}
	}
}

// Get returns the spec registered under id
func (r *Registry) Get(id string) (*Spec, bool) {
	if r == nil {
		return nil, false
	}
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	c := *r.specs[i]
	return &c, true
}

// Len returns the number of registered specs
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.specs)
}
