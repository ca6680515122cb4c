// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the settings file for the niamc command.
//
// A settings file is YAML. Every key is optional; missing keys keep the
// values from [Default], and unknown keys are an error.
//
//	stage: parse
//	jobs: 4
//	preprocess:
//	  enabled: true
//	  command: cc
//	  args: [-E, -P, -x, c, -]
//	output:
//	  color: auto
//	  compact: false
//	  remarks: false
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/niamc/preprocess"
)

// Stage names accepted by the stage key.
const (
	StageLex   = "lex"
	StageParse = "parse"
)

// Color modes accepted by the output.color key.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the decoded form of a settings file.
type Config struct {
	// The last stage to run: "lex" or "parse".
	Stage string `yaml:"stage"`
	// How many files to compile at once. Zero means one per CPU.
	Jobs int `yaml:"jobs"`

	Preprocess Preprocess `yaml:"preprocess"`
	Output     Output     `yaml:"output"`
}

// Preprocess configures the external preprocessor.
type Preprocess struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"`
	// An empty list runs the command with [preprocess.DefaultArgs].
	Args []string `yaml:"args"`
}

// Output configures how diagnostics are printed.
type Output struct {
	Color   string `yaml:"color"`
	Compact bool   `yaml:"compact"`
	Remarks bool   `yaml:"remarks"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Stage: StageParse,
		Preprocess: Preprocess{
			Enabled: true,
			Command: preprocess.DefaultCommand,
			Args:    slices.Clone(preprocess.DefaultArgs),
		},
		Output: Output{Color: ColorAuto},
	}
}

// Load reads the settings file at path on top of [Default].
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a settings file on top of [Default] and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting has an allowed value.
func (c *Config) Validate() error {
	var errs []error
	switch c.Stage {
	case StageLex, StageParse:
	default:
		errs = append(errs, fmt.Errorf("stage: unknown stage %q, expected %q or %q", c.Stage, StageLex, StageParse))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs: must not be negative, got %d", c.Jobs))
	}
	if c.Preprocess.Enabled && c.Preprocess.Command == "" {
		errs = append(errs, errors.New("preprocess.command: must be set when preprocessing is enabled"))
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("output.color: unknown mode %q, expected %q, %q or %q",
			c.Output.Color, ColorAuto, ColorAlways, ColorNever))
	}
	return errors.Join(errs...)
}

// Preprocessor returns the preprocessor these settings describe.
func (c *Config) Preprocessor() preprocess.Preprocessor {
	if !c.Preprocess.Enabled {
		return preprocess.Identity{}
	}
	return preprocess.Command{
		Name: c.Preprocess.Command,
		Args: slices.Clone(c.Preprocess.Args),
	}
}
