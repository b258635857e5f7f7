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

package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/imaging-plaza/fairifier/jsonld"
	"github.com/imaging-plaza/fairifier/validate"
)

// this type encodes a JSON object for responding to root queries
type ServiceInfoResponse struct {
	Name          string `json:"name" example:"fairifier" doc:"The name of the service API"`
	Version       string `json:"version" example:"1.0.0" doc:"The version string (major.minor.patch)"`
	Uptime        int    `json:"uptime" example:"345600" doc:"The time the service has been up (seconds)"`
	Documentation string `json:"documentation" example:"/docs" doc:"The OpenAPI documentation endpoint"`
}

// a response for a metadata-source query (GET)
type SourceResponse struct {
	Id           string `json:"id" example:"gimie" doc:"the configured name of a metadata source"`
	Name         string `json:"name" example:"Gimie Extractor"`
	Organization string `json:"organization" example:"Imaging Plaza"`
	URL          string `json:"url" example:"https://gimie.example.org"`
}

// a request for an enrichment run (POST)
type RunRequest struct {
	// the URL of the software repository to enrich
	RepositoryURL string `json:"repository_url" example:"https://github.com/example/tool" doc:"the URL of the software repository to enrich"`
	// the configured names of the sources to pull metadata from
	GraphSource  string `json:"graph_source" example:"gimie" doc:"the name of the graph source to use"`
	RecordSource string `json:"record_source" example:"llm" doc:"the name of the record source to use"`
}

// a response for an enrichment run request (POST)
type RunResponse struct {
	// enrichment run ID
	Id uuid.UUID `json:"id" doc:"a UUID for the requested run"`
}

// a response for a run status request (GET)
type RunStatusResponse struct {
	// enrichment run ID
	Id string `json:"id"`
	// the run's current state
	Status string `json:"status"`
	// message (if any) related to status
	Message string `json:"message,omitempty"`
	// validation outcome counts (populated when the run succeeds)
	NumIssues   int `json:"num_issues"`
	NumWarnings int `json:"num_warnings"`
}

// a response carrying the products of a successful enrichment run (GET)
type RunResultsResponse struct {
	// the sanitized record in flat form
	Record map[string]any `json:"record" doc:"the sanitized metadata record"`
	// the sanitized record re-expanded into a graph node
	Node jsonld.GraphNode `json:"node" doc:"the record in expanded JSON-LD form"`
	// what validation found and sanitization repaired
	Report *validate.Report `json:"report" doc:"the validation report for the run"`
}

// a response for a validation request (POST): the report plus the
// sanitized form of the submitted record
type ValidationResponse struct {
	Report *validate.Report `json:"report" doc:"the validation report for the submitted record"`
	Record map[string]any   `json:"record" doc:"the sanitized form of the submitted record"`
}

// a response for a frontend form rendering request (POST)
type FormResponse struct {
	Form map[string]any `json:"form" doc:"the record projected into prefixed frontend form keys"`
}

// FairificationService defines the interface for our metadata enrichment
// service.
type FairificationService interface {
	// Starts the service on the selected port, returning an error that indicates
	// success or failure.
	Start(port int) error
	// Gracefully shuts down the service without interrupting active connections.
	Shutdown(ctx context.Context) error
	// Closes down the service, freeing all resources.
	Close()
}
