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

package chunk

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Reader is a Source backed by an io.Reader.
//
// Every Read fills a buffer of exactly size bytes unless the input ends first.
// A short chunk means end of input, so a file whose length is a multiple of
// size yields one trailing empty chunk before the source is exhausted.
type Reader struct {
	r      io.Reader
	closer io.Closer // nil when the Reader does not own r
	buf    []byte
	length int64
	done   bool
	closed bool
}

// Open opens the file at path and returns a Reader owning it. Close releases
// the file handle.
func Open(path string, size int) (*Reader, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "open %q with size %d", path, size)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Reader{r: f, closer: f, buf: make([]byte, size)}, nil
}

// NewReader returns a Reader pulling chunks of size bytes from r.
//
// The Reader does not take ownership of r: Close marks the source as closed
// but leaves r open. Use Open to read a file that should be released on Close.
func NewReader(r io.Reader, size int) (*Reader, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "size %d", size)
	}
	return &Reader{r: r, buf: make([]byte, size)}, nil
}

// Read returns the next chunk of at most size bytes.
func (c *Reader) Read() ([]byte, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.done {
		return c.buf[:0], nil
	}
	n, err := io.ReadFull(c.r, c.buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		c.done = true
	case err != nil:
		// The partial chunk is dropped, so it is not counted either.
		return nil, errors.WithStack(err)
	}
	c.length += int64(n)
	return c.buf[:n], nil
}

// Done reports whether the underlying reader has been read to its end.
func (c *Reader) Done() bool { return c.done }

// BytesLength is the number of bytes handed out by Read so far.
func (c *Reader) BytesLength() int64 { return c.length }

// Close releases the owned file, if any. Calling Close more than once is a
// no-op.
func (c *Reader) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.closer == nil {
		return nil
	}
	return errors.WithStack(c.closer.Close())
}
