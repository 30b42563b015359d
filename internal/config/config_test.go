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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoit-pereira-da-silva/linereader/pkg/linereader"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, linereader.DefaultBufferSize, cfg.BufferSize)
	assert.False(t, cfg.SkipBlank)
	assert.Equal(t, ModeBatch, cfg.Mode)
}

func TestLoad_YAMLWithSubstitution(t *testing.T) {
	t.Setenv("TEST_LR_SIZE", "128")
	path := writeFile(t, "lr.yaml", "buffer_size: ${TEST_LR_SIZE}\nskip_blank: true\nmode: ${TEST_LR_MODE:-single}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.BufferSize)
	assert.True(t, cfg.SkipBlank)
	assert.Equal(t, ModeSingle, cfg.Mode)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "lr.yml", "buffer_size: 64\nmode: single\n")
	t.Setenv(EnvBufferSize, "9")
	t.Setenv(EnvSkipBlank, "true")
	t.Setenv(EnvMode, "BATCH")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{BufferSize: 9, SkipBlank: true, Mode: ModeBatch}, cfg)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		file string
		body string
		env  map[string]string
	}{
		{name: "wrong extension", file: "lr.json", body: "{}"},
		{name: "malformed yaml", file: "lr.yaml", body: "buffer_size: [\n"},
		{name: "bad env size", file: "lr.yaml", body: "", env: map[string]string{EnvBufferSize: "lots"}},
		{name: "bad env bool", file: "lr.yaml", body: "", env: map[string]string{EnvSkipBlank: "maybe"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeFile(t, tc.file, tc.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_DoesNotValidateMergedValues(t *testing.T) {
	cfg, err := Load(writeFile(t, "lr.yaml", "buffer_size: 0\nmode: sideways\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.BufferSize)
	assert.Equal(t, "sideways", cfg.Mode)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{name: "defaults", cfg: Default(), ok: true},
		{name: "single mode", cfg: Config{BufferSize: 1, Mode: ModeSingle}, ok: true},
		{name: "zero buffer", cfg: Config{BufferSize: 0, Mode: ModeBatch}},
		{name: "negative buffer", cfg: Config{BufferSize: -5, Mode: ModeBatch}},
		{name: "unknown mode", cfg: Config{BufferSize: 8, Mode: "sideways"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvFiles(t *testing.T) {
	t.Setenv(EnvMode, "")
	require.NoError(t, os.Unsetenv(EnvMode))
	path := writeFile(t, ".env", EnvMode+"=single\n")

	require.NoError(t, LoadEnvFiles([]string{"", filepath.Join(t.TempDir(), "missing.env"), path}))
	t.Cleanup(func() { _ = os.Unsetenv(EnvMode) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ModeSingle, cfg.Mode)
}

func TestConfig_Options(t *testing.T) {
	cfg := Config{BufferSize: 12, SkipBlank: true, Mode: ModeSingle}
	assert.Equal(t, linereader.Options{Path: "a.txt", BufferSize: 12, SkipBlank: true}, cfg.Options("a.txt"))
}
