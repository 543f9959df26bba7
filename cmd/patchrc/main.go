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

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/commands"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
)

func main() {
	ctx := context.Background()

	o := &opts.RootOpts{}
	rootCmd := newRootCmd(o)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if o.UserLogger == nil {
			o.UserLogger = opts.NewUserLogger(ctx)
		}
		o.UserLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}

func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "patchrc",
		Short: "Apply declarative source patches to files",
		Long: `patchrc applies an ordered set of declarative patches to source files.
Each patch replaces a known literal block or every match of a pattern, and
leaves the file alone when the old content is gone, so runs are repeatable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), o.Debug)
			cmd.SetContext(ctx)
			o.UserLogger = opts.NewUserLogger(ctx)
			return nil
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewApplyCmd(o),
		commands.NewCheckCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}
