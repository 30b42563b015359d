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

// Package config assembles the command line tool settings from, in increasing
// order of precedence: built-in defaults, an optional YAML file, environment
// variables (optionally loaded from .env files) and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/benoit-pereira-da-silva/linereader/pkg/linereader"
)

// Pull strategies.
const (
	ModeBatch  = "batch"
	ModeSingle = "single"
)

// Environment variables overriding the YAML file.
const (
	EnvBufferSize = "LINEREADER_BUFFER_SIZE"
	EnvSkipBlank  = "LINEREADER_SKIP_BLANK"
	EnvMode       = "LINEREADER_MODE"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the resolved tool configuration.
type Config struct {
	BufferSize int    `yaml:"buffer_size"`
	SkipBlank  bool   `yaml:"skip_blank"`
	Mode       string `yaml:"mode"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{BufferSize: linereader.DefaultBufferSize, Mode: ModeBatch}
}

// LoadEnvFiles loads the given .env files into the process environment. Files
// that do not exist are skipped; variables already set are not overridden.
func LoadEnvFiles(envFiles []string) error {
	for _, envFile := range envFiles {
		if envFile == "" {
			continue
		}
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	return nil
}

// Load merges the defaults, then the YAML file at path when path is not empty,
// then the environment. Only syntax errors are reported: the merged values are
// not validated so that flags can still override them. Call Validate once
// every layer has been applied.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the fully resolved values.
func (c Config) Validate() error {
	if c.BufferSize <= 0 {
		return fmt.Errorf("%w: buffer_size must be positive, got %d", ErrInvalidConfig, c.BufferSize)
	}
	switch c.Mode {
	case ModeBatch, ModeSingle:
	default:
		return fmt.Errorf("%w: mode must be %q or %q, got %q", ErrInvalidConfig, ModeBatch, ModeSingle, c.Mode)
	}
	return nil
}

// Options converts c into reader options for the file at path.
func (c Config) Options(path string) linereader.Options {
	return linereader.Options{Path: path, BufferSize: c.BufferSize, SkipBlank: c.SkipBlank}
}

func (c *Config) mergeFile(path string) error {
	clean := filepath.Clean(path)
	if ext := filepath.Ext(clean); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: only .yaml and .yml files are allowed, got %s", ErrInvalidConfig, clean)
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", clean, err)
	}
	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(content), c); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, clean, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBufferSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvBufferSize, v)
		}
		c.BufferSize = n
	}
	if v, ok := lookup(EnvSkipBlank); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvSkipBlank, v)
		}
		c.SkipBlank = b
	}
	if v, ok := lookup(EnvMode); ok && v != "" {
		c.Mode = strings.ToLower(strings.TrimSpace(v))
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} and ${VAR:-default} with the environment
// value, or the default when VAR is unset or empty.
func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if v := os.Getenv(parts[1]); v != "" {
			return v
		}
		return parts[2]
	})
}
