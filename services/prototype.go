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
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"

	"github.com/imaging-plaza/fairifier/auth"
	"github.com/imaging-plaza/fairifier/config"
	"github.com/imaging-plaza/fairifier/export"
	"github.com/imaging-plaza/fairifier/frontend"
	"github.com/imaging-plaza/fairifier/journal"
	"github.com/imaging-plaza/fairifier/metadata"
	"github.com/imaging-plaza/fairifier/runs"
	"github.com/imaging-plaza/fairifier/sources"
	"github.com/imaging-plaza/fairifier/validate"
)

// Version numbers
var majorVersion = 0
var minorVersion = 1
var patchVersion = 0

// Version string
var version = fmt.Sprintf("%d.%d.%d", majorVersion, minorVersion, patchVersion)

// This type implements the FairificationService interface, orchestrating
// metadata enrichment runs over the configured extractor and inferencer
// sources.
type prototype struct {
	// name of the service
	Name string
	// service version identifier
	Version string
	// time which the service was started
	StartTime time.Time
	// port on which the service currently runs
	Port int
	// router for REST endpoints
	Router *mux.Router
	// API wrapper
	API huma.API
	// HTTP server.
	Server *http.Server
	// maps access tokens to users
	Auth *auth.Authenticator
}

// authorize clients for the service, returning the client's user record and
// an error describing any issue encountered
func (service *prototype) authorize(authorizationHeader string) (auth.User, error) {
	if !strings.Contains(authorizationHeader, "Bearer") {
		return auth.User{}, huma.Error401Unauthorized("Invalid authorization header")
	}
	accessToken := strings.TrimSpace(authorizationHeader[len("Bearer "):])
	user, err := service.Auth.GetUser(accessToken)
	if err != nil {
		return auth.User{}, huma.Error401Unauthorized(err.Error())
	}
	return user, nil
}

type ServiceInfoOutput struct {
	Body ServiceInfoResponse `doc:"information about the service itself"`
}

// handler method for root (no authorization needed for this one)
func (service *prototype) getRoot(ctx context.Context,
	input *struct{}) (*ServiceInfoOutput, error) {

	slog.Info("Querying root endpoint...")
	requestsServed.WithLabelValues("root").Inc()
	return &ServiceInfoOutput{
		Body: ServiceInfoResponse{
			Name:          service.Name,
			Version:       service.Version,
			Uptime:        int(service.uptime()),
			Documentation: "/docs",
		},
	}, nil
}

type SourcesOutput struct {
	Body []SourceResponse `doc:"A list of information about available metadata sources"`
}

// handler method for querying all configured metadata sources
func (service *prototype) getSources(ctx context.Context,
	input *struct {
		Authorization string `header:"authorization"`
	}) (*SourcesOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	slog.Info("Querying metadata sources...")
	requestsServed.WithLabelValues("sources").Inc()
	output := &SourcesOutput{
		Body: make([]SourceResponse, 0),
	}
	for sourceName, source := range config.Sources {
		output.Body = append(output.Body, SourceResponse{
			Id:           sourceName,
			Name:         source.Name,
			Organization: source.Organization,
			URL:          source.URL,
		})
	}
	slices.SortFunc(output.Body, func(s1, s2 SourceResponse) int { // sort by id
		return cmp.Compare(s1.Id, s2.Id)
	})
	return output, nil
}

type RunOutput struct {
	Body   RunResponse `doc:"A UUID for the requested enrichment run"`
	Status int
}

// handler method for initiating an enrichment run
func (service *prototype) createRun(ctx context.Context,
	input *struct {
		Authorization string     `header:"Authorization" doc:"Authorization header with access token"`
		Body          RunRequest `doc:"The body of a POST request for an enrichment run"`
		ContentType   string     `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*RunOutput, error) {

	user, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}
	requestsServed.WithLabelValues("runs").Inc()

	runId, err := runs.Create(runs.Specification{
		RepositoryURL: input.Body.RepositoryURL,
		GraphSource:   input.Body.GraphSource,
		RecordSource:  input.Body.RecordSource,
		User:          user,
	})
	if err != nil {
		switch err.(type) {
		case runs.NoRepositoryError, sources.NotFoundError,
			sources.NotAGraphSourceError, sources.NotARecordSourceError:
			return nil, huma.Error422UnprocessableEntity(err.Error())
		default:
			return nil, err
		}
	}
	runsCreated.Inc()
	return &RunOutput{
		Body: RunResponse{
			Id: runId,
		},
		Status: http.StatusCreated,
	}, nil
}

type RunStatusOutput struct {
	Body RunStatusResponse `doc:"A status message for the enrichment run with the given ID"`
}

// handler method for getting the status of an enrichment run
func (service *prototype) getRunStatus(ctx context.Context,
	input *struct {
		Authorization string    `header:"authorization" doc:"Authorization header with access token"`
		Id            uuid.UUID `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the requested run"`
	}) (*RunStatusOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	status, err := runs.Status(input.Id)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &RunStatusOutput{
		Body: RunStatusResponse{
			Id:          input.Id.String(),
			Status:      status.Code.String(),
			Message:     status.Message,
			NumIssues:   status.NumIssues,
			NumWarnings: status.NumWarnings,
		},
	}, nil
}

type RunResultsOutput struct {
	Body RunResultsResponse `doc:"The products of a successful enrichment run"`
}

// handler method for fetching the results of a successful enrichment run
func (service *prototype) getRunResults(ctx context.Context,
	input *struct {
		Authorization string    `header:"authorization" doc:"Authorization header with access token"`
		Id            uuid.UUID `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the requested run"`
	}) (*RunResultsOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	results, err := runs.Results(input.Id)
	if err != nil {
		switch err.(type) {
		case runs.NotFoundError:
			return nil, huma.Error404NotFound(err.Error())
		case runs.ResultsNotAvailableError:
			return nil, huma.Error409Conflict(err.Error())
		default:
			return nil, err
		}
	}
	return &RunResultsOutput{
		Body: RunResultsResponse{
			Record: results.Flat,
			Node:   results.Node,
			Report: results.Report,
		},
	}, nil
}

type RunExportOutput struct {
	Body map[string]any `doc:"A Frictionless data-package descriptor for the run's record"`
}

// handler method for exporting a successful run's record as a Frictionless
// data-package descriptor
func (service *prototype) exportRun(ctx context.Context,
	input *struct {
		Authorization string    `header:"authorization" doc:"Authorization header with access token"`
		Id            uuid.UUID `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the requested run"`
	}) (*RunExportOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	results, err := runs.Results(input.Id)
	if err != nil {
		switch err.(type) {
		case runs.NotFoundError:
			return nil, huma.Error404NotFound(err.Error())
		case runs.ResultsNotAvailableError:
			return nil, huma.Error409Conflict(err.Error())
		default:
			return nil, err
		}
	}
	pkg, err := export.Package(results.Record)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	return &RunExportOutput{
		Body: pkg.Descriptor(),
	}, nil
}

type RunDeletionOutput struct {
	Status int
}

// handler method for deleting (canceling) a running enrichment run
func (service *prototype) deleteRun(ctx context.Context,
	input *struct {
		Authorization string    `header:"authorization" doc:"Authorization header with access token"`
		Id            uuid.UUID `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the requested run"`
	}) (*RunDeletionOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	err = runs.Cancel(input.Id)
	if err != nil {
		switch err.(type) {
		case runs.NotFoundError:
			return nil, huma.Error404NotFound(err.Error())
		case runs.AlreadyFinishedError:
			return nil, huma.Error409Conflict(err.Error())
		default:
			return nil, err
		}
	}
	return &RunDeletionOutput{
		Status: http.StatusAccepted,
	}, nil
}

type HistoryOutput struct {
	Body []journal.Record `doc:"Journal entries for completed runs in the given time range"`
}

// handler method for querying the run journal
func (service *prototype) getHistory(ctx context.Context,
	input *struct {
		Authorization string `header:"authorization" doc:"Authorization header with access token"`
		Start         int64  `query:"start" example:"1704067200" doc:"the start of the time range (Unix seconds)"`
		Stop          int64  `query:"stop" example:"1735689600" doc:"the end of the time range (Unix seconds, 0 means now)"`
	}) (*HistoryOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	stop := time.Now()
	if input.Stop > 0 {
		stop = time.Unix(input.Stop, 0)
	}
	records, err := journal.Records(time.Unix(input.Start, 0), stop)
	if err != nil {
		return nil, err
	}
	return &HistoryOutput{
		Body: records,
	}, nil
}

type ValidationOutput struct {
	Body ValidationResponse `doc:"The validation report and sanitized form of the submitted record"`
}

// handler method for validating and sanitizing a submitted flat record
// without running the full enrichment pipeline
func (service *prototype) validateRecord(ctx context.Context,
	input *struct {
		Authorization string         `header:"Authorization" doc:"Authorization header with access token"`
		Body          map[string]any `doc:"A flat metadata record given as key-value pairs in a JSON object" contentType:"application/json"`
		ContentType   string         `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*ValidationOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}
	recordsValidated.Inc()

	validator := validate.New(newValidatorOptions()...)
	report := validator.Validate(input.Body)
	cleaned := validate.Sanitize(input.Body, report)
	return &ValidationOutput{
		Body: ValidationResponse{
			Report: report,
			Record: cleaned,
		},
	}, nil
}

type FormOutput struct {
	Body FormResponse `doc:"The record rendered into frontend form keys"`
}

// handler method for projecting a flat record into the frontend's prefixed
// form representation
func (service *prototype) renderForm(ctx context.Context,
	input *struct {
		Authorization string         `header:"Authorization" doc:"Authorization header with access token"`
		Body          map[string]any `doc:"A flat metadata record given as key-value pairs in a JSON object" contentType:"application/json"`
		ContentType   string         `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*FormOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	record, err := metadata.FromMap(input.Body)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	return &FormOutput{
		Body: FormResponse{
			Form: frontend.Project(record),
		},
	}, nil
}

// returns the uptime for the service in seconds
func (service *prototype) uptime() float64 {
	return time.Since(service.StartTime).Seconds()
}

// returns validator options matching the service configuration
func newValidatorOptions() []validate.Option {
	options := []validate.Option{
		validate.WithProbeTimeout(time.Duration(config.Validation.ProbeTimeout) * time.Second),
		validate.WithProbeWorkers(config.Validation.ProbeWorkers),
	}
	if config.Validation.SkipProbes {
		options = append(options, validate.WithoutProbes())
	}
	return options
}

// constructs a prototype FAIRification service given our configuration
func NewFairifierPrototype() (FairificationService, error) {

	// validate our configuration
	if len(config.Sources) == 0 {
		return nil, fmt.Errorf("No metadata sources were specified.")
	}

	service := new(prototype)
	service.Name = "fairifier prototype"
	service.Version = version
	service.Port = -1

	// load the access token table
	authenticator, err := auth.NewAuthenticator()
	if err != nil {
		return nil, err
	}
	service.Auth = authenticator

	// set up routing
	service.Router = mux.NewRouter()
	api := humamux.New(service.Router, huma.DefaultConfig(service.Name, service.Version))
	huma.Get(api, "/", service.getRoot)

	// API v1
	huma.Get(api, "/api/v1/sources", service.getSources)
	huma.Post(api, "/api/v1/runs", service.createRun)
	huma.Get(api, "/api/v1/runs/{id}", service.getRunStatus)
	huma.Get(api, "/api/v1/runs/{id}/results", service.getRunResults)
	huma.Get(api, "/api/v1/runs/{id}/export", service.exportRun)
	huma.Delete(api, "/api/v1/runs/{id}", service.deleteRun)
	huma.Get(api, "/api/v1/history", service.getHistory)
	huma.Post(api, "/api/v1/validate", service.validateRecord)
	huma.Post(api, "/api/v1/frontend", service.renderForm)

	// bundled API documentation (built with -tags docs)
	AddDocEndpoints(service.Router)

	// Prometheus metrics
	service.Router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return service, nil
}

// starts the prototype FAIRification service
func (service *prototype) Start(port int) error {
	slog.Info(fmt.Sprintf("Starting %s service on port %d...", service.Name, port))
	slog.Info(fmt.Sprintf("(Accepting up to %d connections)", config.Service.MaxConnections))

	service.StartTime = time.Now()

	// create a listener that limits the number of incoming connections
	service.Port = port
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return err
	}
	defer listener.Close()
	listener = netutil.LimitListener(listener, config.Service.MaxConnections)

	// start run processing
	err = runs.Start()
	if err != nil {
		return err
	}

	// start the server
	service.Server = &http.Server{
		Handler: service.Router}
	err = service.Server.Serve(listener)

	// we don't report the server closing as an error
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

// gracefully shuts down the service without interrupting active connections
func (service *prototype) Shutdown(ctx context.Context) error {
	runs.Stop()
	if service.Server != nil {
		return service.Server.Shutdown(ctx)
	}
	return nil
}

// closes down the service abruptly, freeing all resources
func (service *prototype) Close() {
	runs.Stop()
	if service.Server != nil {
		service.Server.Close()
	}
}
