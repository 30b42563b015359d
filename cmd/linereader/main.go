// Copyright 2026 Benoit Pereira da Silva
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

// Command linereader prints or counts the lines of text files, reading them
// chunk by chunk.
//
// Usage:
//
//	linereader [flags] [file ...]
//
// With no file, or with "-", standard input is read. Settings come from an
// optional YAML file (-config), then LINEREADER_* environment variables
// (optionally loaded from -env files), then flags.
//
//	linereader -buffer 16 -skip-blank notes.txt
//	linereader -count -mode single a.log b.log c.log
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/benoit-pereira-da-silva/linereader/internal/config"
	"github.com/benoit-pereira-da-silva/linereader/pkg/chunk"
	"github.com/benoit-pereira-da-silva/linereader/pkg/linereader"
)

const stdinName = "-"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "linereader: %v\n", err)
		}
		os.Exit(1)
	}
}

// settings holds the parsed command line.
type settings struct {
	cfg     config.Config
	files   []string
	count   bool
	verbose bool
}

func parseArgs(args []string, stderr io.Writer) (settings, error) {
	var s settings

	fs := flag.NewFlagSet("linereader", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	envFiles := fs.String("env", "", "comma separated list of .env files to load")
	bufferSize := fs.Int("buffer", 0, "chunk size in bytes (default from config, 65536)")
	skipBlank := fs.Bool("skip-blank", false, "drop whitespace-only lines")
	mode := fs.String("mode", "", "pull strategy: batch or single")
	fs.BoolVar(&s.count, "count", false, "print line and byte counts instead of lines")
	fs.BoolVar(&s.verbose, "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return s, err
	}

	if *envFiles != "" {
		if err := config.LoadEnvFiles(strings.Split(*envFiles, ",")); err != nil {
			return s, err
		}
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return s, err
	}

	// Flags win over file and environment, but only when explicitly set.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "buffer":
			cfg.BufferSize = *bufferSize
		case "skip-blank":
			cfg.SkipBlank = *skipBlank
		case "mode":
			cfg.Mode = *mode
		}
	})
	if err := cfg.Validate(); err != nil {
		return s, err
	}

	s.cfg = cfg
	s.files = fs.Args()
	if len(s.files) == 0 {
		s.files = []string{stdinName}
	}
	stdinCount := 0
	for _, name := range s.files {
		if name == stdinName {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return s, errors.New("stdin \"-\" can only be read once")
	}
	return s, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	s, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if s.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	out := bufio.NewWriter(stdout)
	if s.count {
		err = countFiles(ctx, s, stdin, out, logger)
	} else {
		for _, name := range s.files {
			if err = printFile(ctx, s.cfg, name, stdin, out, logger); err != nil {
				break
			}
		}
	}
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	return err
}

// openReader opens name, "-" meaning stdin.
func openReader(cfg config.Config, name string, stdin io.Reader, logger *slog.Logger) (*linereader.LineReader, error) {
	opts := cfg.Options(name)
	opts.Logger = logger
	if name != stdinName {
		return linereader.New(opts)
	}
	src, err := chunk.NewReader(stdin, cfg.BufferSize)
	if err != nil {
		return nil, err
	}
	return linereader.NewFromSource(src, opts)
}

// pull drains r with the configured strategy, calling emit for every line.
func pull(ctx context.Context, r *linereader.LineReader, mode string, emit func(string) error) error {
	if mode == config.ModeSingle {
		for line, err := range r.All(ctx) {
			if err != nil {
				return err
			}
			if err := emit(line); err != nil {
				return err
			}
		}
		return nil
	}
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lines, err := r.Next()
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := emit(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func printFile(ctx context.Context, cfg config.Config, name string, stdin io.Reader, out *bufio.Writer, logger *slog.Logger) error {
	r, err := openReader(cfg, name, stdin, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			logger.Warn("failed to close input", "path", name, "err", cerr)
		}
	}()

	return pull(ctx, r, cfg.Mode, func(line string) error {
		if _, err := out.WriteString(line); err != nil {
			return err
		}
		return out.WriteByte('\n')
	})
}

type fileCount struct {
	lines int
	bytes int64
}

// countFiles counts every file in parallel, one reader per file, and prints
// the results in argument order.
func countFiles(ctx context.Context, s settings, stdin io.Reader, out io.Writer, logger *slog.Logger) error {
	counts := make([]fileCount, len(s.files))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range s.files {
		g.Go(func() error {
			r, err := openReader(s.cfg, name, stdin, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			defer func() { _ = r.Close() }()

			n := 0
			if err := pull(gctx, r, s.cfg.Mode, func(string) error { n++; return nil }); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			counts[i] = fileCount{lines: n, bytes: r.BytesLength()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, name := range s.files {
		if _, err := fmt.Fprintf(out, "%d\t%d\t%s\n", counts[i].lines, counts[i].bytes, name); err != nil {
			return err
		}
	}
	return nil
}
