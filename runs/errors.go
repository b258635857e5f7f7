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

package runs

import (
	"fmt"

	"github.com/google/uuid"
)

// indicates that Start() has been called when runs are being processed
type AlreadyRunningError struct{}

func (e AlreadyRunningError) Error() string {
	return "The run manager is already running and cannot be started again."
}

// indicates that a request has been made while the run manager is stopped
type NotRunningError struct{}

func (e NotRunningError) Error() string {
	return "The run manager is not currently processing runs."
}

// indicates that an enrichment run has been requested with no repository URL
type NoRepositoryError struct{}

func (e NoRepositoryError) Error() string {
	return "Requested enrichment run names no repository URL!"
}

// indicates that a run is sought but not found
type NotFoundError struct {
	Id uuid.UUID
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("The run %s was not found.", e.Id.String())
}

// indicates that results have been requested for a run that hasn't finished
// successfully
type ResultsNotAvailableError struct {
	Id uuid.UUID
}

func (e ResultsNotAvailableError) Error() string {
	return fmt.Sprintf("The run %s has no results available.", e.Id.String())
}

// indicates that a cancellation has been requested for a finished run
type AlreadyFinishedError struct {
	Id uuid.UUID
}

func (e AlreadyFinishedError) Error() string {
	return fmt.Sprintf("The run %s has already finished.", e.Id.String())
}
