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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/engine"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_run",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileRun(context.Background(), FileRun{
					Path:    "lib/core/router.dart",
					Written: true,
					Patches: []PatchLine{
						{ID: "add-import", Strategy: "literal", Status: engine.StatusApplied, Occurrences: 1},
						{ID: "extends", Strategy: "literal", Status: engine.StatusAmbiguousMatch, Occurrences: 2},
					},
				})
			},
			wantLogs: []string{
				"◆ lib/core/router.dart • patched",
				"✓ add-import                          literal    applied",
				"? extends                             literal    ambiguous x2",
			},
		},
		{
			name: "log_dry_run",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileRun(context.Background(), FileRun{
					Path:   "lib/feed.dart",
					DryRun: true,
					Patches: []PatchLine{
						{ID: "rename-icons", Strategy: "pattern", Status: engine.StatusNoMatch},
						{ID: "add-import", Strategy: "literal", Status: engine.StatusApplied, Occurrences: 1},
					},
				})
			},
			wantLogs: []string{
				"◆ lib/feed.dart • would patch",
				"• rename-icons                        pattern    no-match",
				"✓ add-import                          literal    applied",
			},
		},
		{
			name: "log_unchanged_file",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileRun(context.Background(), FileRun{
					Path: "lib/feed.dart",
					Patches: []PatchLine{
						{ID: "broken", Strategy: "pattern", Status: engine.StatusInvalid},
					},
				})
			},
			wantLogs: []string{
				"◆ lib/feed.dart • unchanged",
				"✗ broken                              pattern    invalid",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("applying patches")
			},
			wantLogs: []string{
				"patchrc • applying patches",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerMirrorsToZerolog(t *testing.T) {
	console := &bytes.Buffer{}
	structured := &bytes.Buffer{}
	logger := New(console, zerolog.New(structured))

	logger.LogFileRun(context.Background(), FileRun{
		Path:    "a.dart",
		Written: true,
		Patches: []PatchLine{{ID: "p1", Strategy: "literal", Status: engine.StatusApplied, Occurrences: 1}},
	})

	out := structured.String()
	assert.Contains(t, out, `"patch":"p1"`)
	assert.Contains(t, out, `"status":"applied"`)
	assert.Contains(t, out, `"written":true`)
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}
