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
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check that the patch set is fully applied",
		Long: `Check runs the patch set without writing anything and fails if any file
would still change. Run it in CI after apply to catch patches that are not
idempotent or files that were never patched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withConsole(cmd.Context(), cmd.OutOrStdout())
			console := log.FromContext(ctx)
			flags.dryRun = true

			summary, err := runPatchSet(ctx, o, flags, args, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := checkOutcomes(summary, flags.strict); err != nil {
				return err
			}

			warnPending(console, summary)
			if changed := summary.Changed(); len(changed) > 0 {
				paths := make([]string, 0, len(changed))
				for _, f := range changed {
					paths = append(paths, f.Path)
				}
				return errors.Errorf("%w: %s", ErrWouldChange, strings.Join(paths, ", "))
			}

			console.Success("all files are up to date")
			return nil
		},
	}

	addRunFlags(cmd, &flags)

	return cmd
}
