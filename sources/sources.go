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

// Package sources manages the external metadata producers the service pulls
// from: the deterministic extractor, which reads repository structure, and
// the generative inferencer, which reads repository content. Each configured
// source is instantiated once and reused.
package sources

import (
	"context"
	"sync"

	"github.com/imaging-plaza/fairifier/config"
	"github.com/imaging-plaza/fairifier/jsonld"
	"github.com/imaging-plaza/fairifier/sources/gimie"
	"github.com/imaging-plaza/fairifier/sources/llm"
)

// A GraphSource produces a linked-data graph describing a repository.
type GraphSource interface {
	// extracts a JSON-LD graph for the repository at the given URL
	ExtractGraph(ctx context.Context, repositoryURL string) (jsonld.LinkedGraph, error)
}

// A RecordSource produces a flat metadata record describing a repository. Its
// keys are literal field names, not predicate IRIs.
type RecordSource interface {
	// infers a flat metadata record for the repository at the given URL
	InferRecord(ctx context.Context, repositoryURL string) (map[string]any, error)
}

// we maintain a table of source instances, identified by their names, and a
// table of factories for sources with non-built-in implementations (used to
// register test fixtures)
var (
	allSources      = make(map[string]any)
	sourceFactories = make(map[string]func(name string) (any, error))
	sourcesMutex    sync.Mutex
)

// RegisterSource associates a factory with a source name, overriding the
// built-in implementation for that name. Any cached instance is discarded.
func RegisterSource(name string, factory func(name string) (any, error)) {
	sourcesMutex.Lock()
	defer sourcesMutex.Unlock()
	sourceFactories[name] = factory
	delete(allSources, name)
}

// creates the source with the given configured name, or returns an existing
// instance
func newSource(name string) (any, error) {
	sourcesMutex.Lock()
	defer sourcesMutex.Unlock()

	// do we have one of these already?
	if source, found := allSources[name]; found {
		return source, nil
	}
	if _, configured := config.Sources[name]; !configured {
		return nil, NotFoundError{Source: name}
	}

	var source any
	var err error
	if factory, registered := sourceFactories[name]; registered {
		source, err = factory(name)
	} else {
		switch name {
		case "gimie":
			source, err = gimie.NewClient(name)
		case "llm":
			source, err = llm.NewClient(name)
		default:
			err = NotFoundError{Source: name}
		}
	}
	if err == nil {
		allSources[name] = source // stash it
	}
	return source, err
}

// NewGraphSource returns the configured graph source with the given name.
func NewGraphSource(name string) (GraphSource, error) {
	source, err := newSource(name)
	if err != nil {
		return nil, err
	}
	graphSource, ok := source.(GraphSource)
	if !ok {
		return nil, NotAGraphSourceError{Source: name}
	}
	return graphSource, nil
}

// NewRecordSource returns the configured record source with the given name.
func NewRecordSource(name string) (RecordSource, error) {
	source, err := newSource(name)
	if err != nil {
		return nil, err
	}
	recordSource, ok := source.(RecordSource)
	if !ok {
		return nil, NotARecordSourceError{Source: name}
	}
	return recordSource, nil
}

// Names returns the names of all configured sources.
func Names() []string {
	names := make([]string, 0, len(config.Sources))
	for name := range config.Sources {
		names = append(names, name)
	}
	return names
}
