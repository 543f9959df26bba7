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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Load loads a patch set from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .patchrc will try both YAML and HCL formats
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if filepath.Base(path) == ".patchrc" || strings.ToLower(filepath.Ext(path)) == ".patchrc" {
		cfg, err = parseEither(ctx, data)
	} else {
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}
		cfg, err = p.Parse(ctx, data)
	}
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.location = path
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().
		Str("path", path).
		Int("patches", len(cfg.Patches)).
		Strs("files", cfg.Files).
		Msg("configuration loaded")

	return cfg, nil
}

// parseEither tries YAML first, then HCL
func parseEither(ctx context.Context, data []byte) (*Config, error) {
	cfg, yerr := (&YAMLParser{}).Parse(ctx, data)
	if yerr == nil {
		return cfg, nil
	}
	cfg, herr := (&HCLParser{}).Parse(ctx, data)
	if herr == nil {
		return cfg, nil
	}
	return nil, errors.Errorf("failed to parse as YAML (%s) or HCL: %w", yerr.Error(), herr)
}
