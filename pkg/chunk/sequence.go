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

// Sequence is an in-memory Source replaying a fixed list of chunks.
//
// It makes boundary cases reproducible: a delimiter falling exactly on a chunk
// edge, empty chunks in the middle of the stream, or a single oversized chunk.
// The source is exhausted as soon as the last chunk has been handed out, or
// after the first Read when there is no chunk at all.
type Sequence struct {
	chunks  [][]byte
	pos     int
	length  int64
	started bool
	closed  bool
}

// NewSequence returns a Source emitting chunks in order.
func NewSequence(chunks ...string) *Sequence {
	s := &Sequence{chunks: make([][]byte, len(chunks))}
	for i, c := range chunks {
		s.chunks[i] = []byte(c)
	}
	return s
}

// Split cuts content into consecutive chunks of size bytes, mirroring what a
// Reader over the same content would return: the last chunk is the short one,
// and it is empty when len(content) is a multiple of size.
func Split(content string, size int) []string {
	if size <= 0 {
		return []string{content}
	}
	chunks := make([]string, 0, len(content)/size+1)
	for len(content) >= size {
		chunks = append(chunks, content[:size])
		content = content[size:]
	}
	return append(chunks, content)
}

// Read returns the next chunk, or an empty one once the sequence is over.
func (s *Sequence) Read() ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	s.started = true
	if s.pos >= len(s.chunks) {
		return nil, nil
	}
	c := s.chunks[s.pos]
	s.pos++
	s.length += int64(len(c))
	return c, nil
}

// Done reports whether every chunk has been handed out. It is false before
// the first Read, even for an empty sequence.
func (s *Sequence) Done() bool { return s.started && s.pos >= len(s.chunks) }

// BytesLength is the total size of the chunks handed out so far.
func (s *Sequence) BytesLength() int64 { return s.length }

// Close marks the sequence as closed; further reads return ErrClosed.
func (s *Sequence) Close() error {
	s.closed = true
	return nil
}
