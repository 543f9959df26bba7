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
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Apply the patch set to files",
		Long: `Apply runs every patch of the patch set, in order, over each target file.
Targets are the given paths, or the files matched by the patch set's globs.
It will:
1. Load and validate the patch set
2. Apply the patches to each file
3. Write back only the files whose text changed
4. Print one line per patch outcome and a summary table

A patch whose old content is missing or ambiguous leaves the file alone and is
reported; use --strict to turn that into a failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withConsole(cmd.Context(), cmd.OutOrStdout())
			console := log.FromContext(ctx)

			summary, err := runPatchSet(ctx, o, flags, args, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := checkOutcomes(summary, flags.strict); err != nil {
				return err
			}

			warnPending(console, summary)
			verb := "patched"
			if flags.dryRun {
				verb = "would be patched"
			}
			console.Successf("%d of %d files %s", len(summary.Changed()), len(summary.Results), verb)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "show what would change without writing")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a .bak copy of every written file")
	addRunFlags(cmd, &flags)

	return cmd
}
