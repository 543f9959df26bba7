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
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Discover expands the config's file globs against its directory and
// drops excluded files. Paths are slash separated and relative to cfg.Dir().
func Discover(ctx context.Context, cfg *config.Config) ([]string, error) {
	return DiscoverFS(ctx, os.DirFS(cfg.Dir()), cfg)
}

// 🔍 DiscoverFS is Discover over an arbitrary file system
func DiscoverFS(ctx context.Context, fsys fs.FS, cfg *config.Config) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if len(cfg.Files) == 0 {
		return nil, errors.Errorf("no target files: pass paths or set files in the patch set")
	}

	seen := make(map[string]bool)
	var out []string
	for _, pattern := range cfg.Files {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			if config.MatchAny(cfg.Exclude, m, false) {
				logger.Debug().Str("file", m).Msg("file excluded by pattern")
				continue
			}
			out = append(out, m)
		}
	}

	sort.Strings(out)
	logger.Debug().Int("files", len(out)).Msg("targets discovered")
	return out, nil
}
