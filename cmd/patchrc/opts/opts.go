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

package opts

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/walteh/patchrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	UserLogger *UserLogger

	once   sync.Once
	config *config.Config
	err    error
}

// 📚 LoadConfig loads the patch set once. Flags are parsed by the time a
// command runs, so loading is deferred until then.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	o.once.Do(func() {
		path, err := filepath.Abs(o.ConfigFile)
		if err != nil {
			o.err = errors.Errorf("resolving config path: %w", err)
			return
		}
		cfg, err := config.Load(ctx, path)
		if err != nil {
			o.err = errors.Errorf("loading config: %w", err)
			return
		}
		o.config = cfg
	})
	return o.config, o.err
}
