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

// Package chunk provides the raw byte sources consumed by the line reader.
//
// A Source hands out bounded blocks of bytes in file order, reports when it is
// exhausted and keeps a running count of the bytes it returned. It knows
// nothing about lines: reassembling chunks into lines is the job of the
// linereader package.
package chunk

import "github.com/pkg/errors"

var (
	// ErrInvalidSize is returned when a source is built with a non-positive
	// chunk size.
	ErrInvalidSize = errors.New("chunk: size must be positive")
	// ErrClosed is returned by Read once the source has been closed.
	ErrClosed = errors.New("chunk: source is closed")
)

// Source is a lazy sequence of raw byte blocks.
//
// Method expectations:
//
//   - Read returns the next chunk. The slice is only valid until the next call
//     to Read. When the underlying input ends, the remaining data is returned
//     first and the source is flagged as exhausted; further calls return an
//     empty chunk and a nil error.
//
//   - Done reports exhaustion. It is false before the first Read, even when
//     the input is empty.
//
//   - BytesLength is the cumulative number of bytes returned by Read.
//
//   - Close releases the underlying resources. It is idempotent.
type Source interface {
	Read() ([]byte, error)
	Done() bool
	BytesLength() int64
	Close() error
}
