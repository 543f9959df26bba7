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
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/diff"
	"github.com/walteh/patchrc/pkg/engine"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 FileStore is the file access the runner needs
type FileStore interface {
	status.FileManager
	Rel(path string) string
}

// 🔧 Options contains configuration for the runner
type Options struct {
	// Config is the patch set
	Config *config.Config
	// Files reads and writes target files
	Files FileStore
	// Progress receives progress updates, optional
	Progress status.ProgressReporter
	// Logger prints outcomes to the console, optional
	Logger *log.Logger
	// DryRun computes results without writing
	DryRun bool
	// Backup keeps a .bak copy of every written file
	Backup bool
	// Diff records a unified diff for every changed file
	Diff bool
	// DiffContext is the number of context lines in diffs
	DiffContext int
	// Jobs bounds the number of files processed at once; <= 0 means 1
	Jobs int
}

// 🏃 Runner applies a patch set to files
type Runner struct {
	opts Options
}

// 🏭 New creates a new runner
func New(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file store is required")
	}
	if opts.Jobs <= 0 {
		opts.Jobs = 1
	}
	if opts.DiffContext <= 0 {
		opts.DiffContext = 3
	}
	return &Runner{opts: opts}, nil
}

// 📄 processFile patches a single file
func (r *Runner) processFile(ctx context.Context, path string) (FileResult, error) {
	rel := r.opts.Files.Rel(path)
	res := FileResult{Path: rel}
	logger := zerolog.Ctx(ctx).With().Str("file", rel).Logger()

	content, err := r.opts.Files.ReadFile(ctx, path)
	if err != nil {
		res.Err = err
		return res, err
	}

	if bytes.IndexByte(content, 0) >= 0 {
		logger.Debug().Msg("skipping binary file")
		res.Skipped = "binary"
		return res, nil
	}

	reg, err := r.opts.Config.RegistryFor(rel)
	if err != nil {
		res.Err = err
		return res, err
	}

	before := string(content)
	after, report := engine.New(logger).Apply(before, reg)
	res.Report = report

	res.Changed = after != before
	if res.Changed {
		if r.opts.Diff || r.opts.DryRun {
			res.Diff = diff.Unified(rel, before, after, r.opts.DiffContext)
		}
		if !r.opts.DryRun {
			if err := r.write(ctx, path, after); err != nil {
				res.Err = err
				return res, err
			}
			res.Written = true
		}
	}

	r.logResult(ctx, res)
	return res, nil
}

func (r *Runner) write(ctx context.Context, path, text string) error {
	if r.opts.Backup {
		if err := r.opts.Files.BackupFile(ctx, path); err != nil {
			return errors.Errorf("backing up: %w", err)
		}
	}
	if err := r.opts.Files.WriteFileAtomic(ctx, path, []byte(text)); err != nil {
		return errors.Errorf("writing: %w", err)
	}
	return nil
}

func (r *Runner) logResult(ctx context.Context, res FileResult) {
	if r.opts.Logger == nil || res.Report == nil {
		return
	}

	run := log.FileRun{
		Path:    res.Path,
		Written: res.Written,
		DryRun:  r.opts.DryRun,
	}
	for _, o := range res.Report.Outcomes {
		strategy := ""
		if spec, ok := r.specKind(o.PatchID); ok {
			strategy = spec
		}
		run.Patches = append(run.Patches, log.PatchLine{
			ID:          o.PatchID,
			Strategy:    strategy,
			Status:      o.Status,
			Occurrences: o.Occurrences,
			Err:         o.Err,
		})
	}
	r.opts.Logger.LogFileRun(ctx, run)
	if res.Diff != "" {
		r.opts.Logger.Print(diff.Colorize(res.Diff))
	}
}

func (r *Runner) specKind(id string) (string, bool) {
	reg, err := r.opts.Config.Registry()
	if err != nil {
		return "", false
	}
	s, ok := reg.Get(id)
	if !ok {
		return "", false
	}
	return s.Strategy.Kind().String(), true
}
