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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name     string
		info     VersionInfo
		contains []string
		excludes []string
	}{
		{
			name:     "dev_build",
			info:     VersionInfo{Version: "dev", GoVersion: "go1.23.5", Platform: "linux/amd64"},
			contains: []string{"patchrc dev", "go1.23.5 linux/amd64"},
			excludes: []string{"revision", "built"},
		},
		{
			name: "modified_checkout",
			info: VersionInfo{
				Version:   "v0.2.0",
				GoVersion: "go1.23.5",
				Platform:  "darwin/arm64",
				Revision:  "abc123",
				Time:      "2025-01-02T03:04:05Z",
				Modified:  true,
			},
			contains: []string{"patchrc v0.2.0", "abc123 (modified)", "2025-01-02T03:04:05Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatVersion(tt.info)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := newRootCmd(&opts.RootOpts{})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version", "--json"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	dir := t.TempDir()
	config := "files: [\"*.txt\"]\npatches:\n  - id: greet\n    literal: {old: hello, new: goodbye}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patches.yaml"), []byte(config), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello world\n"), 0644))

	o := &opts.RootOpts{}
	cmd := newRootCmd(o)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(dir, "patches.yaml"), "apply"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.NotNil(t, o.UserLogger)
	b, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "goodbye world\n", string(b))
}
