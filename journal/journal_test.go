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

// These tests must be run serially, since the journal is coordinated by a
// single instance.

package journal

import (
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/imaging-plaza/fairifier/config"
	"github.com/imaging-plaza/fairifier/fairtest"
)

// runs all tests serially
func TestRunner(t *testing.T) {
	tester := SerialTests{Test: t}
	tester.TestInitAndFinalize()
	tester.TestRecordSuccessfulRun()
	tester.TestRecordFailedRun()
	tester.TestRejectsBogusStatus()
	tester.TestFetchRecordsInTimeRange()
}

// This runs setup, runs all tests, and does breakdown.
func TestMain(m *testing.M) {
	var status int
	setup()
	status = m.Run()
	breakdown()
	os.Exit(status)
}

// this function gets called at the beginning of a test session
func setup() {
	fairtest.EnableDebugLogging()

	log.Print("Creating testing directory...\n")
	var err error
	TESTING_DIR, err = os.MkdirTemp(os.TempDir(), "fairifier-journal-tests-")
	if err != nil {
		log.Panicf("Couldn't create testing directory: %s", err)
	}

	myConfig := strings.ReplaceAll(journalConfig, "TESTING_DIR", TESTING_DIR)
	err = config.Init([]byte(myConfig))
	if err != nil {
		log.Panicf("Couldn't initialize configuration: %s", err)
	}
}

// this function gets called after all tests have been run
func breakdown() {
	if IsOpen() {
		Finalize()
	}
	if TESTING_DIR != "" {
		log.Printf("Deleting testing directory %s...\n", TESTING_DIR)
		os.RemoveAll(TESTING_DIR)
	}
}

// To run the tests serially, we attach them to a SerialTests type and
// have them run by a single test runner.
type SerialTests struct{ Test *testing.T }

func (t *SerialTests) TestInitAndFinalize() {
	assert := assert.New(t.Test)

	assert.False(IsOpen())
	err := Init()
	assert.Nil(err)
	assert.True(IsOpen())
	err = Finalize()
	assert.Nil(err)
	assert.False(IsOpen())
}

func (t *SerialTests) TestRecordSuccessfulRun() {
	assert := assert.New(t.Test)

	err := Init()
	assert.Nil(err)

	record := Record{
		Id:            uuid.New(),
		RepositoryURL: "https://github.com/example/tool",
		StartTime:     time.Now().UTC().Truncate(time.Second),
		StopTime:      time.Now().UTC().Truncate(time.Second).Add(3 * time.Second),
		Status:        "succeeded",
		NumIssues:     0,
		NumWarnings:   2,
	}
	err = RecordRun(record)
	assert.Nil(err)

	record1, err := RunRecord(record.Id)
	assert.Nil(err)
	assert.Equal(record.Id, record1.Id)
	assert.Equal(record.RepositoryURL, record1.RepositoryURL)
	assert.Equal(record.Status, record1.Status)
	assert.Equal(record.NumIssues, record1.NumIssues)
	assert.Equal(record.NumWarnings, record1.NumWarnings)
	assert.Equal(record.StartTime, record1.StartTime)
	assert.Equal(record.StopTime, record1.StopTime)

	err = Finalize()
	assert.Nil(err)
}

func (t *SerialTests) TestRecordFailedRun() {
	assert := assert.New(t.Test)

	err := Init()
	assert.Nil(err)

	record := Record{
		Id:            uuid.New(),
		RepositoryURL: "https://github.com/example/broken",
		StartTime:     time.Now().UTC().Truncate(time.Second),
		StopTime:      time.Now().UTC().Truncate(time.Second),
		Status:        "failed",
		NumIssues:     4,
	}
	err = RecordRun(record)
	assert.Nil(err)

	record1, err := RunRecord(record.Id)
	assert.Nil(err)
	assert.Equal(record.Status, record1.Status)
	assert.Equal(record.NumIssues, record1.NumIssues)

	err = Finalize()
	assert.Nil(err)
}

func (t *SerialTests) TestRejectsBogusStatus() {
	assert := assert.New(t.Test)

	err := Init()
	assert.Nil(err)

	record := Record{
		Id:            uuid.New(),
		RepositoryURL: "https://github.com/example/tool",
		Status:        "shrug",
	}
	err = RecordRun(record)
	assert.NotNil(err)

	err = Finalize()
	assert.Nil(err)
}

func (t *SerialTests) TestFetchRecordsInTimeRange() {
	assert := assert.New(t.Test)

	err := Init()
	assert.Nil(err)

	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		err = RecordRun(Record{
			Id:            uuid.New(),
			RepositoryURL: "https://github.com/example/tool",
			StartTime:     base.Add(time.Duration(i) * time.Hour),
			StopTime:      base.Add(time.Duration(i)*time.Hour + time.Minute),
			Status:        "succeeded",
		})
		assert.Nil(err)
	}

	records, err := Records(base, base.Add(time.Hour))
	assert.Nil(err)
	assert.Len(records, 2)
	assert.True(records[0].StartTime.Before(records[1].StartTime))

	err = Finalize()
	assert.Nil(err)
}

// temporary testing directory
var TESTING_DIR string

// configuration
const journalConfig string = `
service:
  port: 8080
  max_connections: 100
  data_directory: TESTING_DIR
sources:
  gimie:
    name: Gimie Extractor
    url: https://gimie.example.org
`
