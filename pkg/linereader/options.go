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

package linereader

import (
	"errors"
	"fmt"
	"log/slog"
)

// DefaultBufferSize is the chunk size used when Options.BufferSize is zero.
const DefaultBufferSize = 64 * 1024

var (
	// ErrInvalidBufferSize reports a negative Options.BufferSize.
	ErrInvalidBufferSize = errors.New("linereader: buffer size must be positive")
	// ErrMissingPath reports an empty Options.Path passed to New.
	ErrMissingPath = errors.New("linereader: file path is required")
	// ErrNilSource reports a nil chunk.Source passed to NewFromSource.
	ErrNilSource = errors.New("linereader: nil chunk source")
	// ErrClosed is returned by pulls issued after Close.
	ErrClosed = errors.New("linereader: reader is closed")
)

// Options configures a LineReader. It is read once at construction and never
// mutated afterwards.
type Options struct {
	// Path of the file to read. Required by New, ignored by NewFromSource.
	Path string

	// BufferSize is the chunk size in bytes. Zero selects DefaultBufferSize.
	BufferSize int

	// SkipBlank drops every line that is empty once surrounding whitespace is
	// trimmed.
	SkipBlank bool

	// Logger receives debug events. Nil falls back to slog.Default().
	Logger *slog.Logger
}

// normalize validates o and fills the defaults.
func (o Options) normalize() (Options, error) {
	if o.BufferSize < 0 {
		return o, fmt.Errorf("%w: got %d", ErrInvalidBufferSize, o.BufferSize)
	}
	if o.BufferSize == 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o, nil
}
