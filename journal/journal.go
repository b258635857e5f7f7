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

package journal

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/imaging-plaza/fairifier/config"
)

// This is the enrichment run journal, which logs all completed runs. The
// journal is a SQLite table of run records (one per run).

// a record storing all information relevant to a completed run
type Record struct {
	// UUID associated with the run
	Id uuid.UUID `json:"id"`
	// URL of the repository the run enriched
	RepositoryURL string `json:"repository_url"`
	// times at which the run was requested and at which it completed
	StartTime time.Time `json:"start_time"`
	StopTime  time.Time `json:"stop_time"`
	// status of the run ("succeeded", "failed", or "canceled")
	Status string `json:"status"`
	// numbers of blocking issues and warnings reported by validation
	NumIssues   int `json:"num_issues"`
	NumWarnings int `json:"num_warnings"`
}

// initialize the run journal
func Init() error {
	if !IsOpen() {
		go runJournalProcess()
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

// saves and closes the run journal (if it's been opened)
func Finalize() error {
	if IsOpen() {
		channels_.Input.Shutdown <- struct{}{}
		closeChannels()
	}
	return nil
}

// returns true if the journal is open for writing, false if not
func IsOpen() bool {
	if channels_.Open { // has Init() been called?
		channels_.Input.CheckIfOpen <- struct{}{}
		select {
		case isOpen := <-channels_.Output.IsOpen:
			return isOpen
		case <-time.After(1 * time.Second): // after a second, we assume the goroutine has crashed
			closeChannels()
			return false
		}
	}
	return false
}

// records a completed run
// record: the record containing all run information
func RecordRun(record Record) error {
	switch record.Status {
	case "succeeded", "failed", "canceled":
		// pass-through (see below)
	default:
		return &NewRecordError{
			Id:      record.Id,
			Message: "Invalid status: " + record.Status,
		}
	}

	if !IsOpen() {
		return &NotOpenError{}
	}

	channels_.Input.CreateRecord <- record
	return <-channels_.Output.Error
}

// retrieves the record for the run with the given ID
func RunRecord(id uuid.UUID) (Record, error) {
	if !IsOpen() {
		return Record{}, &NotOpenError{}
	}
	channels_.Input.FetchRecord <- id
	select {
	case record := <-channels_.Output.Record:
		return record, nil
	case err := <-channels_.Output.Error:
		return Record{}, err
	}
}

// retrieves records for runs that started within the time range with the
// given (inclusive) bounds
// start: the beginning of the time period of interest
// stop: the end of the time period of interest
func Records(start, stop time.Time) ([]Record, error) {
	if !IsOpen() {
		return nil, &NotOpenError{}
	}
	channels_.Input.FetchRecords <- TimeRange{Start: start, Stop: stop}
	select {
	case records := <-channels_.Output.Records:
		return records, nil
	case err := <-channels_.Output.Error:
		return nil, err
	}
}

//-----------
// Internals
//-----------

// The run journal gets its own goroutine so it doesn't bring down the entire
// service if it crashes. Here we define "input" channels (main process ->
// goroutine) and "output" channels (goroutine -> main process) for passing
// data back and forth

type TimeRange struct {
	Start, Stop time.Time
}

var channels_ struct {
	Open  bool // true if channels are open, false if not
	Input struct {
		CreateRecord chan Record    // for creating new records
		CheckIfOpen  chan struct{}  // for checking to see whether the database is open
		FetchRecord  chan uuid.UUID // for fetching a single record by ID
		FetchRecords chan TimeRange // for fetching records within a time range
		Shutdown     chan struct{}  // for shutting down the database
	}

	Output struct {
		Record  chan Record   // for returning a single record
		Records chan []Record // for returning records
		Error   chan error    // for returning errors
		IsOpen  chan bool     // for answering queries about whether the database is open
	}
}

const runsSchema = `CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	repository_url TEXT NOT NULL,
	status TEXT NOT NULL,
	num_issues INTEGER NOT NULL,
	num_warnings INTEGER NOT NULL,
	start_time TEXT NOT NULL,
	stop_time TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_by_start_time ON runs(start_time);`

func runJournalProcess() {

	// open the database, creating the schema if necessary
	dbPath := filepath.Join(config.Service.DataDirectory, "run_journal.db")
	conn, err := sqlite.OpenConn(dbPath, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		channels_.Output.Error <- &CantOpenError{
			Message: err.Error(),
		}
		return
	}
	if err := sqlitex.ExecuteScript(conn, runsSchema, nil); err != nil {
		channels_.Output.Error <- &CantOpenError{
			Message: err.Error(),
		}
		return
	}

	openChannels()

	// handle requests
	running := true
	for running {
		select {

		case <-channels_.Input.CheckIfOpen:
			channels_.Output.IsOpen <- true // always true if this goroutine is running!

		case record := <-channels_.Input.CreateRecord:
			channels_.Output.Error <- createRecord(conn, record)

		case id := <-channels_.Input.FetchRecord:
			record, err := fetchRecord(conn, id)
			if err != nil {
				channels_.Output.Error <- err
			} else {
				channels_.Output.Record <- record
			}

		case timeRange := <-channels_.Input.FetchRecords:
			records, err := fetchRecords(conn, timeRange.Start, timeRange.Stop)
			if err != nil {
				channels_.Output.Error <- err
			} else {
				channels_.Output.Records <- records
			}

		case <-channels_.Input.Shutdown:
			if err := conn.Close(); err != nil {
				channels_.Output.Error <- &CantCloseError{
					Message: err.Error(),
				}
			}
			running = false
		}
	}
}

func openChannels() {
	channels_.Open = true
	channels_.Input.CreateRecord = make(chan Record)
	channels_.Input.CheckIfOpen = make(chan struct{})
	channels_.Input.FetchRecord = make(chan uuid.UUID)
	channels_.Input.FetchRecords = make(chan TimeRange)
	channels_.Input.Shutdown = make(chan struct{})
	channels_.Output.Record = make(chan Record)
	channels_.Output.Records = make(chan []Record)
	channels_.Output.Error = make(chan error)
	channels_.Output.IsOpen = make(chan bool)
}

func closeChannels() {
	channels_.Open = false
	close(channels_.Input.CreateRecord)
	close(channels_.Input.CheckIfOpen)
	close(channels_.Input.FetchRecord)
	close(channels_.Input.FetchRecords)
	close(channels_.Input.Shutdown)
	close(channels_.Output.Record)
	close(channels_.Output.Records)
	close(channels_.Output.Error)
	close(channels_.Output.IsOpen)
}

func createRecord(conn *sqlite.Conn, record Record) error {
	err := sqlitex.Execute(conn,
		`INSERT INTO runs (id, repository_url, status, num_issues,
			num_warnings, start_time, stop_time)
		VALUES (?, ?, ?, ?, ?, ?, ?);`,
		&sqlitex.ExecOptions{
			Args: []any{
				record.Id.String(),
				record.RepositoryURL,
				record.Status,
				record.NumIssues,
				record.NumWarnings,
				record.StartTime.UTC().Format(time.RFC3339),
				record.StopTime.UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return &NewRecordError{Id: record.Id, Message: err.Error()}
	}
	return nil
}

func recordFromRow(stmt *sqlite.Stmt) (Record, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return Record{}, err
	}
	startTime, err := time.Parse(time.RFC3339, stmt.ColumnText(5))
	if err != nil {
		return Record{}, err
	}
	stopTime, err := time.Parse(time.RFC3339, stmt.ColumnText(6))
	if err != nil {
		return Record{}, err
	}
	return Record{
		Id:            id,
		RepositoryURL: stmt.ColumnText(1),
		Status:        stmt.ColumnText(2),
		NumIssues:     stmt.ColumnInt(3),
		NumWarnings:   stmt.ColumnInt(4),
		StartTime:     startTime,
		StopTime:      stopTime,
	}, nil
}

func fetchRecord(conn *sqlite.Conn, id uuid.UUID) (Record, error) {
	var record Record
	found := false
	err := sqlitex.Execute(conn,
		`SELECT id, repository_url, status, num_issues, num_warnings,
			start_time, stop_time FROM runs WHERE id = ?;`,
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				record, err = recordFromRow(stmt)
				found = err == nil
				return err
			},
		})
	if err != nil {
		return Record{}, err
	}
	if !found {
		return Record{}, &RecordNotFoundError{Id: id}
	}
	return record, nil
}

func fetchRecords(conn *sqlite.Conn, start, stop time.Time) ([]Record, error) {
	records := make([]Record, 0)
	err := sqlitex.Execute(conn,
		`SELECT id, repository_url, status, num_issues, num_warnings,
			start_time, stop_time FROM runs
		WHERE start_time >= ? AND start_time <= ?
		ORDER BY start_time;`,
		&sqlitex.ExecOptions{
			Args: []any{
				start.UTC().Format(time.RFC3339),
				stop.UTC().Format(time.RFC3339),
			},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record, err := recordFromRow(stmt)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			},
		})
	return records, err
}
