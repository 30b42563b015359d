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
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const crlf = "\r\n"

// bufferSizes covers chunks much smaller than a line, around a line, and
// larger than any test input.
var bufferSizes = []struct {
	name string
	size int
}{
	{"one byte", 1},
	{"low", 7},
	{"medium", 33},
	{"high", 150000},
}

// newRand returns a seeded source so failures can be replayed.
func newRand(t *testing.T) *rand.Rand {
	t.Helper()
	return rand.New(rand.NewSource(int64(len(t.Name()))))
}

// randomLines builds n lines of 20 to 40 underscores.
func randomLines(rnd *rand.Rand, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = strings.Repeat("_", 20+rnd.Intn(21))
	}
	return lines
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lines.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func openReader(t *testing.T, content string, size int, skipBlank bool) *LineReader {
	t.Helper()
	r, err := New(Options{Path: writeTemp(t, content), BufferSize: size, SkipBlank: skipBlank})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// collectBatch drains r with Next.
func collectBatch(t *testing.T, r *LineReader) []string {
	t.Helper()
	require.False(t, r.Done(), "reader must not be done before the first pull")
	received := []string{}
	for !r.Done() {
		lines, err := r.Next()
		require.NoError(t, err)
		received = append(received, lines...)
	}
	return received
}

// collectSingle drains r with NextSingle.
func collectSingle(t *testing.T, r *LineReader) []string {
	t.Helper()
	require.False(t, r.Done(), "reader must not be done before the first pull")
	received := []string{}
	for !r.Done() {
		line, ok, err := r.NextSingle()
		require.NoError(t, err)
		if ok {
			received = append(received, line)
		}
	}
	return received
}

var collectors = []struct {
	name    string
	collect func(*testing.T, *LineReader) []string
}{
	{"batch", collectBatch},
	{"single", collectSingle},
}

// forEachMode runs fn for every collector and buffer size.
func forEachMode(t *testing.T, fn func(t *testing.T, size int, collect func(*testing.T, *LineReader) []string)) {
	for _, c := range collectors {
		for _, b := range bufferSizes {
			t.Run(c.name+"/"+b.name, func(t *testing.T) {
				fn(t, b.size, c.collect)
			})
		}
	}
}
