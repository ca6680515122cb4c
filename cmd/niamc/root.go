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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/bufbuild/niamc"
	"github.com/bufbuild/niamc/ast"
	"github.com/bufbuild/niamc/internal/config"
	"github.com/bufbuild/niamc/report"
	"github.com/bufbuild/niamc/walk"
)

// rootOptions holds the values of the root command's flags.
type rootOptions struct {
	lex, parse   bool
	explain      bool
	configPath   string
	color        string
	compact      bool
	jobs         int
	noPreprocess bool
	cpp          string
}

func newRootCommand() *cobra.Command {
	opts := new(rootOptions)
	cmd := &cobra.Command{
		Use:   "niamc [flags] <file>...",
		Short: "niamc - never in a million Cs",
		Long: `niamc is the front end of a compiler for a tiny subset of C.

Each file is preprocessed, lexed and parsed independently. Problems in the
source are printed as diagnostics, and the exit status is non-zero if any file
has an error.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.lex, "lex", false, "Run the lexer only")
	flags.BoolVar(&opts.parse, "parse", false, "Run the lexer, then the parser (default)")
	flags.BoolVarP(&opts.explain, "explain", "e", false, "Enable debug logging and dump tokens or the AST")
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML settings file")
	flags.StringVar(&opts.color, "color", config.ColorAuto, "When to color output: auto, always or never")
	flags.BoolVar(&opts.compact, "compact", false, "Print one line per diagnostic")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "How many files to compile at once (0 means one per CPU)")
	flags.BoolVar(&opts.noPreprocess, "no-preprocess", false, "Do not run the C preprocessor")
	flags.StringVar(&opts.cpp, "cpp", "", "The C preprocessor to run")

	cmd.AddCommand(newVersionCommand())
	return cmd
}

func runRoot(cmd *cobra.Command, opts *rootOptions, paths []string) error {
	cfg, err := settings(cmd, opts)
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := newLogger(stderr, opts.explain)

	comp := niamc.Compiler{
		Preprocessor:   cfg.Preprocessor(),
		MaxParallelism: cfg.Jobs,
	}
	if cfg.Stage == config.StageLex {
		comp.Stage = niamc.StageLex
	}

	logger.Debug("compiling", "files", len(paths), "stage", comp.Stage, "jobs", cfg.Jobs,
		"preprocess", cfg.Preprocess.Enabled)
	start := time.Now()
	results, err := comp.Compile(cmd.Context(), paths...)
	if err != nil && !errors.Is(err, niamc.ErrInvalidSource) {
		return err
	}
	logger.Debug("compiled", "elapsed", time.Since(start))

	s := newStyles(useColor(cfg.Output.Color, stdout))
	seen := make(map[*niamc.Result]struct{}, len(results))
	for _, res := range results {
		if _, ok := seen[res]; ok {
			continue
		}
		seen[res] = struct{}{}

		logger.Debug("file", "path", res.File.Path(), "bytes", res.File.Len(),
			"tokens", len(res.Tokens), "errors", res.Report.ErrorCount())
		if err := printResult(stdout, s, res, comp.Stage, opts.explain); err != nil {
			return err
		}
		if opts.explain {
			logTree(logger, res.Program)
		}
	}

	renderer := report.Renderer{
		Resolver:    results.Files(),
		Compact:     cfg.Output.Compact,
		Colorize:    useColor(cfg.Output.Color, stderr),
		ShowRemarks: cfg.Output.Remarks,
		ShowDebug:   opts.explain,
	}
	if _, _, rerr := renderer.Render(results.Report(), stderr); rerr != nil {
		return rerr
	}
	return err
}

// settings loads the settings file, if any, and applies flags on top.
func settings(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	switch {
	case opts.parse:
		cfg.Stage = config.StageParse
	case opts.lex:
		cfg.Stage = config.StageLex
	}
	if flags.Changed("color") {
		cfg.Output.Color = opts.color
	}
	if flags.Changed("compact") {
		cfg.Output.Compact = opts.compact
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if flags.Changed("cpp") {
		cfg.Preprocess.Command = opts.cpp
	}
	if opts.noPreprocess {
		cfg.Preprocess.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// printResult writes the status line for one file, followed by its tokens
// or AST when explaining.
func printResult(out io.Writer, s *styles, res *niamc.Result, stage niamc.Stage, explain bool) error {
	path := s.path.Sprint(res.File.Path())
	if res.Report.ErrorCount() > 0 {
		_, err := fmt.Fprintf(out, "%s %s\n", s.failed.Sprint("failed"), path)
		return err
	}

	verb := "parsed"
	if stage == niamc.StageLex {
		verb = "lexed"
	}
	if _, err := fmt.Fprintf(out, "%s %s %s\n", s.ok.Sprint(verb), path,
		s.detail.Sprintf("(%d tokens)", len(res.Tokens))); err != nil {
		return err
	}
	if !explain {
		return nil
	}

	if stage == niamc.StageLex {
		text := res.File.Text()
		for _, tok := range res.Tokens {
			if _, err := fmt.Fprintf(out, "%v\t%v\t%q\n", tok.Kind, tok.Span, tok.Text(text)); err != nil {
				return err
			}
		}
		return nil
	}
	return ast.Dump(out, res.Program)
}

// logTree logs every node of program at debug level, indented by depth.
func logTree(logger *slog.Logger, program *ast.Program) {
	if program == nil {
		return
	}
	_ = walk.NodesWithPath(program, func(path []ast.Node, node ast.Node) error {
		logger.Debug("node", "depth", len(path), "type", fmt.Sprintf("%T", node), "span", node.Span())
		return nil
	})
}

// newLogger returns the logger for progress and timing information.
func newLogger(w io.Writer, explain bool) *slog.Logger {
	level := slog.LevelWarn
	if explain {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
