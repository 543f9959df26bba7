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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct {
	// Environ overrides the variables exposed as env.NAME; nil uses os.Environ
	Environ []string
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "patchrc.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	environ := p.Environ
	if environ == nil {
		environ = os.Environ()
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(environ),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Files   []string `hcl:"files,optional"`
		Exclude []string `hcl:"exclude,optional"`
		Patches []struct {
			ID      string   `hcl:"id,label"`
			Files   []string `hcl:"files,optional"`
			Literal *struct {
				Old string `hcl:"old"`
				New string `hcl:"new"`
			} `hcl:"literal,block"`
			Pattern *struct {
				Match    string `hcl:"match"`
				Template string `hcl:"template"`
			} `hcl:"pattern,block"`
		} `hcl:"patch,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Files:   hclCfg.Files,
		Exclude: hclCfg.Exclude,
	}
	for _, hp := range hclCfg.Patches {
		p := Patch{
			ID:    hp.ID,
			Files: hp.Files,
		}
		if hp.Literal != nil {
			p.Literal = &Literal{Old: hp.Literal.Old, New: hp.Literal.New}
		}
		if hp.Pattern != nil {
			p.Pattern = &Pattern{Match: hp.Pattern.Match, Template: hp.Pattern.Template}
		}
		cfg.Patches = append(cfg.Patches, p)
	}

	return cfg, nil
}

// envObject exposes KEY=VALUE pairs as an object value
func envObject(environ []string) cty.Value {
	vals := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vals)
}
