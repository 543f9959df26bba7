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
	"testing"
	"testing/fstest"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/engine"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/status"
	"github.com/walteh/patchrc/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockStore is a mock implementation of FileStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	result := m.Called(ctx, path)
	b, _ := result.Get(0).([]byte)
	return b, result.Error(1)
}

func (m *MockStore) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	return m.Called(ctx, path, content).Error(0)
}

func (m *MockStore) BackupFile(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockStore) FileExists(ctx context.Context, path string) (bool, error) {
	result := m.Called(ctx, path)
	return result.Bool(0), result.Error(1)
}

func (m *MockStore) Rel(path string) string {
	return path
}

// 🔧 MockProgress is a mock implementation of status.ProgressReporter
type MockProgress struct {
	mock.Mock
}

func (m *MockProgress) StartOperation(ctx context.Context, total int) {
	m.Called(ctx, total)
}

func (m *MockProgress) UpdateProgress(ctx context.Context, processed int) {
	m.Called(ctx, processed)
}

func (m *MockProgress) FinishOperation(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockProgress) ReportFile(ctx context.Context, path string, written, wouldChange bool, err error) {
	m.Called(ctx, path, written, wouldChange, err)
}

const routerSource = `import 'package:flutter/material.dart';

class _AppShell extends StatelessWidget {
  final Widget child;
}
`

const feedSource = `import 'package:flutter/material.dart';

Icon(Icons.home_outlined)
Icon(Icons.person_outlined)
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Files: []string{"lib/**/*.dart"},
		Patches: []config.Patch{
			{
				ID:      "add-rendering-import",
				Literal: &config.Literal{Old: "import 'package:flutter/material.dart';\n\n", New: "import 'package:flutter/material.dart';\nimport 'package:flutter/rendering.dart';\n\n"},
			},
			{
				ID:      "stateful-shell",
				Files:   []string{"lib/core/**"},
				Literal: &config.Literal{Old: "class _AppShell extends StatelessWidget {", New: "class _AppShell extends StatefulWidget {"},
			},
			{
				ID:      "rounded-icons",
				Files:   []string{"lib/features/**"},
				Pattern: &config.Pattern{Match: `Icons\.(\w+)_outlined`, Template: "Icons.${1}_rounded"},
			},
		},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

// 🧪 createTestEnv writes the fixture tree and returns a context and manager
func createTestEnv(t *testing.T) (context.Context, string, *status.Manager) {
	dir := testutils.WriteTree(t, map[string]string{
		"lib/core/router.dart":        routerSource,
		"lib/features/feed/feed.dart": feedSource,
		"lib/main.dart":               "void main() {}\n",
	})
	ctx := testutils.Context(t)
	return ctx, dir, status.New(dir, zerolog.Ctx(ctx))
}

var targets = []string{"lib/core/router.dart", "lib/features/feed/feed.dart", "lib/main.dart"}

func TestRunner_Run(t *testing.T) {
	ctx, dir, mgr := createTestEnv(t)

	r, err := New(Options{Config: testConfig(t), Files: mgr, Progress: mgr, Jobs: 4})
	require.NoError(t, err)

	summary, err := r.Run(ctx, targets)
	require.NoError(t, err)
	require.Len(t, summary.Results, 3)

	router := summary.Results[0]
	assert.Equal(t, "lib/core/router.dart", router.Path)
	assert.True(t, router.Written)
	assert.True(t, router.Report.AllApplied())
	require.Len(t, router.Report.Outcomes, 2, "icon patch is filtered out for core files")
	assert.Contains(t, testutils.ReadFile(t, dir, "lib/core/router.dart"), "import 'package:flutter/rendering.dart';")
	assert.Contains(t, testutils.ReadFile(t, dir, "lib/core/router.dart"), "extends StatefulWidget")

	feed := summary.Results[1]
	assert.True(t, feed.Written)
	o, ok := feed.Report.Outcome("rounded-icons")
	require.True(t, ok)
	assert.Equal(t, 2, o.Occurrences)
	assert.Contains(t, testutils.ReadFile(t, dir, "lib/features/feed/feed.dart"), "Icons.person_rounded")

	main := summary.Results[2]
	assert.False(t, main.Written)
	assert.False(t, main.Changed)
	assert.Equal(t, "void main() {}\n", testutils.ReadFile(t, dir, "lib/main.dart"))

	assert.True(t, summary.HasPending(), "main.dart has no import to patch")
	assert.False(t, summary.HasInvalid())
	assert.Len(t, summary.Changed(), 2)

	processed, total := mgr.Processed()
	assert.Equal(t, 3, processed)
	assert.Equal(t, 3, total)
}

func TestRunner_ReportsEachFile(t *testing.T) {
	ctx, _, mgr := createTestEnv(t)

	progress := &MockProgress{}
	progress.On("StartOperation", mock.Anything, 2).Return().Once()
	progress.On("UpdateProgress", mock.Anything, mock.Anything).Return().Twice()
	progress.On("FinishOperation", mock.Anything).Return().Once()
	progress.On("ReportFile", mock.Anything, "lib/core/router.dart", true, true, nil).Return().Once()
	progress.On("ReportFile", mock.Anything, "lib/main.dart", false, false, nil).Return().Once()

	r, err := New(Options{Config: testConfig(t), Files: mgr, Progress: progress})
	require.NoError(t, err)

	_, err = r.Run(ctx, []string{"lib/core/router.dart", "lib/main.dart"})
	require.NoError(t, err)
	progress.AssertExpectations(t)
}

func TestRunner_SecondRunIsNoOp(t *testing.T) {
	ctx, dir, mgr := createTestEnv(t)
	cfg := testConfig(t)

	r, err := New(Options{Config: cfg, Files: mgr})
	require.NoError(t, err)

	_, err = r.Run(ctx, targets)
	require.NoError(t, err)
	first := testutils.ReadFile(t, dir, "lib/core/router.dart")

	summary, err := r.Run(ctx, targets)
	require.NoError(t, err)
	assert.Empty(t, summary.Changed())
	assert.Equal(t, 0, summary.Counts()[engine.StatusApplied])
	assert.Equal(t, first, testutils.ReadFile(t, dir, "lib/core/router.dart"))
}

func TestRunner_DryRun(t *testing.T) {
	ctx, dir, mgr := createTestEnv(t)

	r, err := New(Options{Config: testConfig(t), Files: mgr, DryRun: true})
	require.NoError(t, err)

	summary, err := r.Run(ctx, targets)
	require.NoError(t, err)

	router := summary.Results[0]
	assert.False(t, router.Written)
	assert.True(t, router.WouldChange())
	assert.Equal(t, "would patch", router.State(true))
	assert.Contains(t, router.Diff, "+import 'package:flutter/rendering.dart';")
	assert.Equal(t, routerSource, testutils.ReadFile(t, dir, "lib/core/router.dart"), "dry run must not write")

	rows := summary.Rows(true)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].Applied)
	assert.Equal(t, "unchanged", rows[2].State)
	assert.Equal(t, 1, rows[2].NoMatch)
}

func TestRunner_Backup(t *testing.T) {
	ctx, dir, mgr := createTestEnv(t)

	r, err := New(Options{Config: testConfig(t), Files: mgr, Backup: true})
	require.NoError(t, err)

	_, err = r.Run(ctx, targets)
	require.NoError(t, err)

	assert.Equal(t, routerSource, testutils.ReadFile(t, dir, "lib/core/router.dart.bak"))
	assert.False(t, testutils.Exists(t, dir, "lib/main.dart.bak"), "unchanged files are not backed up")
}

func TestRunner_LogsToConsole(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	ctx, _, mgr := createTestEnv(t)
	buf := &bytes.Buffer{}

	r, err := New(Options{
		Config: testConfig(t),
		Files:  mgr,
		Logger: log.New(buf, zerolog.Nop()),
		DryRun: true,
	})
	require.NoError(t, err)

	_, err = r.Run(ctx, targets[:1])
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "lib/core/router.dart • would patch")
	assert.Contains(t, out, "add-rendering-import")
	assert.Contains(t, out, "literal")
	assert.Contains(t, out, "+++ b/lib/core/router.dart")
}

func TestRunner_SkipsBinaryFiles(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	store.On("ReadFile", mock.Anything, "img.dart").Return([]byte("import\x00'package:flutter/material.dart';"), nil)

	r, err := New(Options{Config: testConfig(t), Files: store})
	require.NoError(t, err)

	summary, err := r.Run(ctx, []string{"img.dart"})
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "binary", summary.Results[0].Skipped)
	assert.Nil(t, summary.Results[0].Report)
	store.AssertNotCalled(t, "WriteFileAtomic", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunner_FailureStopsNewFiles(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	boom := errors.New("disk on fire")
	store.On("ReadFile", mock.Anything, "a.dart").Return([]byte("import 'package:flutter/material.dart';\n\nvoid main() {}\n"), nil)
	store.On("WriteFileAtomic", mock.Anything, "a.dart", mock.Anything).Return(boom)

	r, err := New(Options{Config: testConfig(t), Files: store, Jobs: 1})
	require.NoError(t, err)

	summary, err := r.Run(ctx, []string{"a.dart", "b.dart", "c.dart"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "processing file a.dart")

	require.Len(t, summary.Results, 1)
	assert.Equal(t, "failed", summary.Results[0].State(false))
	store.AssertNotCalled(t, "ReadFile", mock.Anything, "b.dart")
	store.AssertNotCalled(t, "ReadFile", mock.Anything, "c.dart")
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &MockStore{}
	r, err := New(Options{Config: testConfig(t), Files: store})
	require.NoError(t, err)

	summary, err := r.Run(ctx, []string{"a.dart"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, summary.Results)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{Files: &MockStore{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")

	_, err = New(Options{Config: &config.Config{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file store is required")
}

func TestDiscoverFS(t *testing.T) {
	fsys := fstest.MapFS{
		"lib/main.dart":                 {Data: []byte("")},
		"lib/core/router.dart":          {Data: []byte("")},
		"lib/generated/l10n.dart":       {Data: []byte("")},
		"lib/core/README.md":            {Data: []byte("")},
		"test/widget_test.dart":         {Data: []byte("")},
		"lib/features/feed/screen.dart": {Data: []byte("")},
	}

	tests := []struct {
		name      string
		cfg       *config.Config
		want      []string
		wantError string
	}{
		{
			name: "files_and_exclude",
			cfg: &config.Config{
				Files:   []string{"lib/**/*.dart"},
				Exclude: []string{"lib/generated/**"},
			},
			want: []string{"lib/core/router.dart", "lib/features/feed/screen.dart", "lib/main.dart"},
		},
		{
			name: "overlapping_globs_are_deduplicated",
			cfg: &config.Config{
				Files: []string{"lib/core/*.dart", "lib/**/router.dart"},
			},
			want: []string{"lib/core/router.dart"},
		},
		{
			name:      "no_globs",
			cfg:       &config.Config{},
			wantError: "no target files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiscoverFS(context.Background(), fsys, tt.cfg)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
