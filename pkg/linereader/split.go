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

import "strings"

const (
	lineFeed       = '\n'
	carriageReturn = "\r"
)

// splitLines turns a raw segment into lines.
//
// Every carriage return is removed, wherever it appears, then the segment is
// cut on each line feed. An empty segment is one empty line, and a segment
// ending with a line feed ends with an empty line: the caller decides whether
// a segment exists at all. With skipBlank, whitespace-only lines are dropped.
func splitLines(segment string, skipBlank bool) []string {
	lines := strings.Split(strings.ReplaceAll(segment, carriageReturn, ""), string(lineFeed))
	if !skipBlank {
		return lines
	}
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return kept
}
