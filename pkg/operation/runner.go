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
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Run patches every target and returns the results in target order.
// A file that fails to read or write stops new files from being started;
// files already running finish. The returned summary holds every file that
// was started, even when an error is returned.
func (r *Runner) Run(ctx context.Context, targets []string) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("targets", len(targets)).Int("jobs", r.opts.Jobs).Bool("dry_run", r.opts.DryRun).Msg("running patch set")

	if r.opts.Progress != nil {
		r.opts.Progress.StartOperation(ctx, len(targets))
		defer r.opts.Progress.FinishOperation(ctx)
	}

	results := make([]FileResult, len(targets))
	ran := make([]bool, len(targets))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)

	for i, path := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// g.Go may have blocked on the limit while another file failed
			if gctx.Err() != nil {
				return nil
			}
			res, err := r.processFile(gctx, path)
			results[i] = res
			ran[i] = true
			n := done.Add(1)
			if r.opts.Progress != nil {
				r.opts.Progress.ReportFile(ctx, res.Path, res.Written, res.WouldChange(), res.Err)
				r.opts.Progress.UpdateProgress(ctx, int(n))
			}
			if err != nil {
				return errors.Errorf("processing file %s: %w", res.Path, err)
			}
			return nil
		})
	}

	err := g.Wait()

	summary := &Summary{}
	for i, ok := range ran {
		if ok {
			summary.Results = append(summary.Results, results[i])
		}
	}

	if err != nil {
		return summary, err
	}
	if ctx.Err() != nil {
		return summary, errors.Errorf("run cancelled: %w", ctx.Err())
	}
	return summary, nil
}
