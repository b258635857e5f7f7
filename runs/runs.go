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

// Package runs coordinates asynchronous enrichment runs. All bookkeeping
// lives in a single manager goroutine that clients talk to over channels, so
// no run state is ever touched concurrently. Each run executes its pipeline
// in its own goroutine and reports back to the manager when done.
package runs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/imaging-plaza/fairifier/auth"
	"github.com/imaging-plaza/fairifier/config"
	"github.com/imaging-plaza/fairifier/journal"
	"github.com/imaging-plaza/fairifier/merge"
	"github.com/imaging-plaza/fairifier/pipeline"
	"github.com/imaging-plaza/fairifier/schema"
	"github.com/imaging-plaza/fairifier/sources"
	"github.com/imaging-plaza/fairifier/validate"
)

// this type holds a specification used to create a valid enrichment run
type Specification struct {
	// the URL of the software repository to enrich
	RepositoryURL string
	// the names of the graph and record sources to pull from (as specified
	// in the service config file)
	GraphSource  string
	RecordSource string
	// information about the user requesting the run
	User auth.User
}

type RunStatusCode int

const (
	RunStatusUnknown RunStatusCode = iota
	RunStatusRunning
	RunStatusSucceeded
	RunStatusFailed
	RunStatusCanceled
)

func (c RunStatusCode) String() string {
	switch c {
	case RunStatusRunning:
		return "running"
	case RunStatusSucceeded:
		return "succeeded"
	case RunStatusFailed:
		return "failed"
	case RunStatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// basic status information regarding an enrichment run
type RunStatus struct {
	// the run's current state
	Code RunStatusCode
	// a failure message (empty unless Code is RunStatusFailed)
	Message string
	// validation outcome counts (populated when the run succeeds)
	NumIssues   int
	NumWarnings int
}

//---------
// Manager
//---------

// manager global state
var manager managerState

type managerState struct {
	Started  bool
	Channels managerChannels
	// the vocabulary runs expand records against (nil means the built-in one)
	Context schema.Context
}

type managerChannels struct {
	RequestRun  chan Specification // used by client to create a new run
	ReturnRunId chan uuid.UUID     // returns run ID to client

	CancelRun chan uuid.UUID // used by client to cancel a run

	RequestStatus chan uuid.UUID // used by client to request run status
	ReturnStatus  chan RunStatus // returns run status to client

	RequestResults chan uuid.UUID        // used by client to request run results
	ReturnResults  chan *pipeline.Result // returns results to client

	RunFinished chan runCompletion // used by workers to report completion

	Error chan error    // internal -> client error propagation
	Stop  chan struct{} // used by client to stop run management
}

// what a worker goroutine reports when its pipeline finishes
type runCompletion struct {
	Id     uuid.UUID
	Result *pipeline.Result
	Err    error
}

// the manager's record of one run
type runEntry struct {
	Spec      Specification
	Status    RunStatus
	Result    *pipeline.Result
	StartTime time.Time
	StopTime  time.Time
	Cancel    context.CancelFunc
}

// Start begins processing enrichment runs.
func Start() error {
	if manager.Started {
		return AlreadyRunningError{}
	}
	if config.Service.ContextFile != "" {
		ctx, err := schema.LoadContext(config.Service.ContextFile)
		if err != nil {
			return err
		}
		manager.Context = ctx
	}
	manager.Channels = managerChannels{
		RequestRun:     make(chan Specification, 32),
		ReturnRunId:    make(chan uuid.UUID, 32),
		CancelRun:      make(chan uuid.UUID, 32),
		RequestStatus:  make(chan uuid.UUID, 32),
		ReturnStatus:   make(chan RunStatus, 32),
		RequestResults: make(chan uuid.UUID, 32),
		ReturnResults:  make(chan *pipeline.Result, 32),
		RunFinished:    make(chan runCompletion, 32),
		Error:          make(chan error, 32),
		Stop:           make(chan struct{}),
	}
	manager.Started = true
	go manager.process()
	return nil
}

// Stop halts run processing, canceling any runs still in flight.
func Stop() error {
	if !manager.Started {
		return NotRunningError{}
	}
	manager.Channels.Stop <- struct{}{}
	err := <-manager.Channels.Error
	manager.Started = false
	return err
}

// Running reports whether the manager is processing runs.
func Running() bool {
	return manager.Started
}

// Create starts a new enrichment run, returning its ID.
func Create(spec Specification) (uuid.UUID, error) {
	if !manager.Started {
		return uuid.UUID{}, NotRunningError{}
	}
	if spec.RepositoryURL == "" {
		return uuid.UUID{}, NoRepositoryError{}
	}
	manager.Channels.RequestRun <- spec
	select {
	case id := <-manager.Channels.ReturnRunId:
		return id, nil
	case err := <-manager.Channels.Error:
		return uuid.UUID{}, err
	}
}

// Status reports the status of the run with the given ID.
func Status(id uuid.UUID) (RunStatus, error) {
	if !manager.Started {
		return RunStatus{}, NotRunningError{}
	}
	manager.Channels.RequestStatus <- id
	select {
	case status := <-manager.Channels.ReturnStatus:
		return status, nil
	case err := <-manager.Channels.Error:
		return RunStatus{}, err
	}
}

// Results returns the results of a successfully finished run.
func Results(id uuid.UUID) (*pipeline.Result, error) {
	if !manager.Started {
		return nil, NotRunningError{}
	}
	manager.Channels.RequestResults <- id
	select {
	case results := <-manager.Channels.ReturnResults:
		return results, nil
	case err := <-manager.Channels.Error:
		return nil, err
	}
}

// Cancel halts the run with the given ID.
func Cancel(id uuid.UUID) error {
	if !manager.Started {
		return NotRunningError{}
	}
	manager.Channels.CancelRun <- id
	return <-manager.Channels.Error
}

// This goroutine handles all client interactions. Workers run pipelines and
// report completions back to it; nothing else touches the run table.
func (m *managerState) process() {
	entries := make(map[uuid.UUID]*runEntry)

	running := true
	for running {
		select {

		case spec := <-m.Channels.RequestRun:
			id, err := m.startRun(entries, spec)
			if err != nil {
				m.Channels.Error <- err
				break
			}
			m.Channels.ReturnRunId <- id
			slog.Info(fmt.Sprintf("Created new enrichment run %s for %s",
				id.String(), spec.RepositoryURL))

		case completion := <-m.Channels.RunFinished:
			m.finishRun(entries, completion)

		case id := <-m.Channels.CancelRun:
			entry, found := entries[id]
			if !found {
				m.Channels.Error <- NotFoundError{Id: id}
				break
			}
			if entry.Status.Code != RunStatusRunning {
				m.Channels.Error <- AlreadyFinishedError{Id: id}
				break
			}
			entry.Cancel()
			m.Channels.Error <- nil

		case id := <-m.Channels.RequestStatus:
			entry, found := entries[id]
			if !found {
				m.Channels.Error <- NotFoundError{Id: id}
				break
			}
			m.Channels.ReturnStatus <- entry.Status

		case id := <-m.Channels.RequestResults:
			entry, found := entries[id]
			if !found {
				m.Channels.Error <- NotFoundError{Id: id}
				break
			}
			if entry.Status.Code != RunStatusSucceeded {
				m.Channels.Error <- ResultsNotAvailableError{Id: id}
				break
			}
			m.Channels.ReturnResults <- entry.Result

		case <-m.Channels.Stop:
			for _, entry := range entries {
				if entry.Status.Code == RunStatusRunning {
					entry.Cancel()
				}
			}
			m.Channels.Error <- nil
			running = false
		}
	}
}

// startRun builds a pipeline for the spec and launches its worker.
func (m *managerState) startRun(entries map[uuid.UUID]*runEntry,
	spec Specification) (uuid.UUID, error) {
	graphSource, err := sources.NewGraphSource(spec.GraphSource)
	if err != nil {
		return uuid.UUID{}, err
	}
	recordSource, err := sources.NewRecordSource(spec.RecordSource)
	if err != nil {
		return uuid.UUID{}, err
	}

	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	entries[id] = &runEntry{
		Spec:      spec,
		Status:    RunStatus{Code: RunStatusRunning},
		StartTime: time.Now(),
		Cancel:    cancel,
	}

	p := pipeline.New(graphSource, recordSource, newValidator(), m.Context)
	go func() {
		result, err := p.Run(ctx, spec.RepositoryURL)
		m.Channels.RunFinished <- runCompletion{Id: id, Result: result, Err: err}
	}()
	return id, nil
}

// finishRun updates a run's entry from its worker's report and journals the
// outcome.
func (m *managerState) finishRun(entries map[uuid.UUID]*runEntry,
	completion runCompletion) {
	entry, found := entries[completion.Id]
	if !found {
		return
	}
	entry.StopTime = time.Now()
	switch {
	case completion.Err == nil:
		entry.Result = completion.Result
		entry.Status = RunStatus{
			Code:        RunStatusSucceeded,
			NumIssues:   len(completion.Result.Report.Issues),
			NumWarnings: len(completion.Result.Report.Warnings),
		}
		// stash the merged document alongside the journal database
		if config.Service.DataDirectory != "" {
			path := filepath.Join(config.Service.DataDirectory,
				completion.Id.String()+".jsonld")
			if err := merge.WriteDocument(completion.Result.Merged, path); err != nil {
				slog.Error(fmt.Sprintf("Couldn't persist merged document for run %s: %s",
					completion.Id.String(), err.Error()))
			}
		}
	case errors.Is(completion.Err, context.Canceled):
		entry.Status = RunStatus{Code: RunStatusCanceled}
		slog.Info(fmt.Sprintf("Run %s canceled", completion.Id.String()))
	default:
		entry.Status = RunStatus{
			Code:    RunStatusFailed,
			Message: completion.Err.Error(),
		}
		slog.Error(fmt.Sprintf("Run %s failed: %s", completion.Id.String(),
			completion.Err.Error()))
	}

	if journal.IsOpen() {
		err := journal.RecordRun(journal.Record{
			Id:            completion.Id,
			RepositoryURL: entry.Spec.RepositoryURL,
			StartTime:     entry.StartTime,
			StopTime:      entry.StopTime,
			Status:        entry.Status.Code.String(),
			NumIssues:     entry.Status.NumIssues,
			NumWarnings:   entry.Status.NumWarnings,
		})
		if err != nil {
			slog.Error(fmt.Sprintf("Couldn't journal run %s: %s",
				completion.Id.String(), err.Error()))
		}
	}
}

// newValidator builds a validator from the service configuration.
func newValidator() *validate.Validator {
	options := []validate.Option{
		validate.WithProbeTimeout(time.Duration(config.Validation.ProbeTimeout) * time.Second),
		validate.WithProbeWorkers(config.Validation.ProbeWorkers),
	}
	if config.Validation.SkipProbes {
		options = append(options, validate.WithoutProbes())
	}
	return validate.New(options...)
}
