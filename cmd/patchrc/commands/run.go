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

package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/engine"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrInvalidPatches = errors.Base("invalid patches")
	ErrPendingPatches = errors.Base("patches did not apply")
	ErrWouldChange    = errors.Base("files would change")
)

// runFlags are the flags shared by apply and check
type runFlags struct {
	dryRun bool
	backup bool
	strict bool
	diff   bool
	jobs   int
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().BoolVar(&f.diff, "diff", false, "print a unified diff for every changed file")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 1, "number of files patched at once")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail if any patch did not apply")
}

// withConsole stores a console logger for out in the context
func withConsole(ctx context.Context, out io.Writer) context.Context {
	return log.NewContext(ctx, log.New(out, *zerolog.Ctx(ctx)))
}

// 🏃 runPatchSet loads the patch set, resolves targets and runs every patch
// over them. ctx must carry a console logger (see withConsole).
func runPatchSet(ctx context.Context, o *opts.RootOpts, f runFlags, args []string, out io.Writer) (*operation.Summary, error) {
	console := log.FromContext(ctx)

	cfg, err := o.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if o.UserLogger != nil {
		o.UserLogger.LogValidation(true, fmt.Sprintf("Loaded %s (%d patches)", cfg.Location(), len(cfg.Patches)), nil)
	}

	baseDir, err := filepath.Abs(cfg.Dir())
	if err != nil {
		return nil, errors.Errorf("resolving base directory: %w", err)
	}

	targets, err := resolveTargets(ctx, cfg.Dir(), args, func() ([]string, error) {
		return operation.Discover(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	if o.UserLogger != nil {
		o.UserLogger.LogStateChange(fmt.Sprintf("Resolved %d target files", len(targets)))
	}

	mode := "applying"
	if f.dryRun {
		mode = "dry run"
	}
	console.Header(fmt.Sprintf("%s %d patches to %d files", mode, len(cfg.Patches), len(targets)))

	zlog := zerolog.Ctx(ctx)
	mgr := status.New(baseDir, zlog)

	runner, err := operation.New(operation.Options{
		Config:   cfg,
		Files:    mgr,
		Progress: mgr,
		Logger:   console,
		DryRun:   f.dryRun,
		Backup:   f.backup,
		Diff:     f.diff,
		Jobs:     f.jobs,
	})
	if err != nil {
		return nil, errors.Errorf("creating runner: %w", err)
	}

	summary, err := runner.Run(ctx, targets)
	if summary != nil && len(summary.Results) > 0 {
		console.LogNewline()
		status.RenderSummary(out, summary.Rows(f.dryRun))
		for _, r := range summary.Results {
			switch {
			case r.Err != nil:
				console.Errorf("%s: %v", r.Path, r.Err)
			case r.Skipped != "":
				console.Infof("%s skipped (%s)", r.Path, r.Skipped)
			}
		}
	}
	return summary, err
}

// resolveTargets makes explicit paths absolute or falls back to discovery
func resolveTargets(ctx context.Context, dir string, args []string, discover func() ([]string, error)) ([]string, error) {
	if len(args) == 0 {
		targets, err := discover()
		if err != nil {
			return nil, errors.Errorf("discovering targets: %w", err)
		}
		zerolog.Ctx(ctx).Debug().Str("dir", dir).Int("count", len(targets)).Msg("discovered targets")
		return targets, nil
	}

	targets := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, errors.Errorf("resolving %s: %w", arg, err)
		}
		targets = append(targets, abs)
	}
	return targets, nil
}

// 🔍 checkOutcomes applies the failure policy to a finished run
func checkOutcomes(summary *operation.Summary, strict bool) error {
	counts := summary.Counts()
	if n := counts[engine.StatusInvalid]; n > 0 {
		return errors.Errorf("%w: %d", ErrInvalidPatches, n)
	}
	if strict && summary.HasPending() {
		return errors.Errorf("%w: %d", ErrPendingPatches, pendingCount(summary))
	}
	return nil
}

func warnPending(console *log.Logger, summary *operation.Summary) {
	if summary.HasPending() {
		console.Warningf("%d patches did not apply", pendingCount(summary))
	}
}

func pendingCount(summary *operation.Summary) int {
	counts := summary.Counts()
	return counts[engine.StatusNoMatch] + counts[engine.StatusAmbiguousMatch]
}
