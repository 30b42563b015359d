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

// Package linereader reassembles fixed-size chunks of a file into lines.
//
// A LineReader pulls raw chunks from a chunk.Source and cuts them into lines
// delimited by '\n', removing every '\r'. Lines come out the same whatever the
// chunk size: a line split across any number of chunks is returned once and
// whole, and a final line without a trailing newline is never dropped.
//
// Usage pattern:
//
//	r, err := linereader.New(linereader.Options{Path: "access.log"})
//	if err != nil { /* configuration or I/O error */ }
//	defer r.Close()
//	for !r.Done() {
//	    lines, err := r.Next()      // or line, ok, err := r.NextSingle()
//	    if err != nil { /* I/O error */ }
//	    for _, line := range lines { /* ... */ }
//	}
//
// A LineReader is not safe for concurrent use.
package linereader

import (
	"bytes"
	"log/slog"

	"github.com/valyala/bytebufferpool"

	"github.com/benoit-pereira-da-silva/linereader/pkg/chunk"
)

// LineReader turns a chunk.Source into a stream of lines.
//
// Between two pulls it keeps the carry fragment, the bytes following the last
// newline seen so far. The fragment is nil when no partial line is pending and
// points to an empty string right after a newline: both states are needed to
// know whether one more (possibly empty) line must be emitted at the end.
type LineReader struct {
	opts   Options
	source chunk.Source
	logger *slog.Logger

	carry   *string
	pending []string // lines produced by a batch pull but not yet handed out
	served  int
	closed  bool
}

// New validates opts and opens opts.Path.
//
// Configuration errors are reported before the file is touched. Errors opening
// the file are returned as is (errors.Is(err, fs.ErrNotExist) holds for a
// missing file).
func New(opts Options) (*LineReader, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	if opts.Path == "" {
		return nil, ErrMissingPath
	}
	src, err := chunk.Open(opts.Path, opts.BufferSize)
	if err != nil {
		return nil, err
	}
	return newLineReader(src, opts), nil
}

// NewFromSource builds a LineReader over an existing source. The reader takes
// ownership of src and closes it on Close. opts.BufferSize is validated but the
// chunk size is the one src was built with.
func NewFromSource(src chunk.Source, opts Options) (*LineReader, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	return newLineReader(src, opts), nil
}

func newLineReader(src chunk.Source, opts Options) *LineReader {
	logger := opts.Logger
	if opts.Path != "" {
		logger = logger.With("path", opts.Path)
	}
	return &LineReader{opts: opts, source: src, logger: logger}
}

// Done reports whether every line has been produced: the source is exhausted
// and no carry fragment is left to flush.
func (r *LineReader) Done() bool {
	return r.source.Done() && r.carry == nil
}

// BytesLength is the number of raw bytes consumed from the source so far.
func (r *LineReader) BytesLength() int64 {
	return r.source.BytesLength()
}

// LinesRead is the number of lines returned to the caller so far by Next and
// NextSingle. Lines still queued for NextSingle are not counted.
func (r *LineReader) LinesRead() int {
	return r.served
}

// Next returns the lines completed by one reassembly step, in file order.
//
// The result may be empty while the reader is not done yet (for instance when
// SkipBlank drops every line of a step). Once Done reports true, Next keeps
// returning an empty slice.
func (r *LineReader) Next() ([]string, error) {
	if r.closed {
		return nil, ErrClosed
	}
	lines, err := r.next()
	if err != nil {
		return nil, err
	}
	r.served += len(lines)
	return lines, nil
}

// NextSingle returns the next line. ok is false when there is no line left.
//
// Lines produced in excess by the underlying batch step are queued and served
// by the following calls.
func (r *LineReader) NextSingle() (line string, ok bool, err error) {
	if r.closed {
		return "", false, ErrClosed
	}
	for len(r.pending) == 0 && !r.Done() {
		lines, err := r.next()
		if err != nil {
			return "", false, err
		}
		r.pending = lines
	}
	if len(r.pending) == 0 {
		return "", false, nil
	}
	line = r.pending[0]
	r.pending = r.pending[1:]
	r.served++
	return line, true, nil
}

// Close releases the source. Calling it again is a no-op.
func (r *LineReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.pending = nil
	r.logger.Debug("linereader: closed", "bytes", r.source.BytesLength(), "lines", r.served)
	return r.source.Close()
}

func (r *LineReader) next() ([]string, error) {
	segment, err := r.nextSegment()
	if err != nil {
		return nil, err
	}
	// Zero bytes after a pull can only mean an empty input.
	if r.source.BytesLength() == 0 {
		return []string{}, nil
	}
	prepend := r.pending
	r.pending = nil
	if segment == nil {
		if prepend == nil {
			return []string{}, nil
		}
		return prepend, nil
	}
	return r.toLines(*segment, prepend), nil
}

// toLines splits segment and places prepend in front of the result.
func (r *LineReader) toLines(segment string, prepend []string) []string {
	lines := splitLines(segment, r.opts.SkipBlank)
	if len(prepend) == 0 {
		return lines
	}
	out := make([]string, 0, len(prepend)+len(lines))
	out = append(out, prepend...)
	return append(out, lines...)
}

// nextSegment performs one reassembly step.
//
// Once the source is exhausted it hands out the carry fragment, nil included.
// Otherwise it pulls chunks until one of them holds a newline or the source
// runs dry. In the first case the segment stops at the last newline of the
// accumulated data and the rest becomes the new carry fragment; in the second
// the whole accumulation is returned and no fragment is left. The returned
// segment may contain newlines: splitting it is the job of toLines.
func (r *LineReader) nextSegment() (*string, error) {
	if r.source.Done() {
		segment := r.carry
		r.carry = nil
		if segment != nil {
			r.logger.Debug("linereader: final fragment flushed", "bytes", len(*segment))
		}
		return segment, nil
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	cut := -1
	for !r.source.Done() {
		data, err := r.source.Read()
		if err != nil {
			return nil, err
		}
		at := bytes.LastIndexByte(data, lineFeed)
		offset := buf.Len()
		_, _ = buf.Write(data)
		if at >= 0 {
			cut = offset + at
			break
		}
	}

	var prefix string
	if r.carry != nil {
		prefix = *r.carry
	}
	if cut < 0 {
		segment := prefix + string(buf.B)
		r.carry = nil
		r.logger.Debug("linereader: source exhausted", "bytes", r.source.BytesLength())
		return &segment, nil
	}
	segment := prefix + string(buf.B[:cut])
	tail := string(buf.B[cut+1:])
	r.carry = &tail
	return &segment, nil
}
