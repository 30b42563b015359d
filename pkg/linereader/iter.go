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
	"context"
	"iter"
)

// All returns an iterator over the remaining lines, pulled one at a time with
// NextSingle.
//
// Iteration stops as soon as:
//   - the reader is done (the sequence simply ends),
//   - a pull fails (the error is yielded once with an empty line), or
//   - ctx is canceled (ctx.Err() is yielded once).
//
// Breaking out of the loop leaves the reader usable: the next pull resumes
// right after the last line received. All does not close the reader.
//
//	for line, err := range r.All(ctx) {
//	    if err != nil { return err }
//	    fmt.Println(line)
//	}
func (r *LineReader) All(ctx context.Context) iter.Seq2[string, error] {
	if ctx == nil {
		ctx = context.Background()
	}
	return func(yield func(string, error) bool) {
		for {
			// Check for cancellation before each pull.
			select {
			case <-ctx.Done():
				yield("", ctx.Err())
				return
			default:
			}

			line, ok, err := r.NextSingle()
			if err != nil {
				yield("", err)
				return
			}
			if !ok {
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}
