// Copyright (c) 2024 The Imaging Plaza Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package sources

import "fmt"

// This error type is returned when a source is sought but not found.
type NotFoundError struct {
	Source string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("The metadata source '%s' was not found", e.Source)
}

// indicates that a configured source cannot produce linked-data graphs
type NotAGraphSourceError struct {
	Source string
}

func (e NotAGraphSourceError) Error() string {
	return fmt.Sprintf("The metadata source '%s' does not produce graphs", e.Source)
}

// indicates that a configured source cannot produce flat records
type NotARecordSourceError struct {
	Source string
}

func (e NotARecordSourceError) Error() string {
	return fmt.Sprintf("The metadata source '%s' does not produce records", e.Source)
}
