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

// Package pipeline runs one synchronous enrichment of a software repository:
// extractor graph and inferencer record in, sanitized record and validation
// report out. Each stage takes immutable inputs and returns new data, so
// concurrent runs share nothing.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imaging-plaza/fairifier/jsonld"
	"github.com/imaging-plaza/fairifier/merge"
	"github.com/imaging-plaza/fairifier/metadata"
	"github.com/imaging-plaza/fairifier/schema"
	"github.com/imaging-plaza/fairifier/sources"
	"github.com/imaging-plaza/fairifier/validate"
)

// A Result carries everything one enrichment run produced.
type Result struct {
	// the merged extractor + inferencer document, pre-validation
	Merged *jsonld.Document
	// the sanitized record in typed form
	Record *metadata.SoftwareRecord
	// the sanitized record in flat form
	Flat map[string]any
	// the sanitized record re-expanded into a graph node, ready to persist
	Node jsonld.GraphNode
	// what validation found and sanitization repaired
	Report *validate.Report
}

// A Pipeline wires the two metadata sources to the merge, validation, and
// codec stages.
type Pipeline struct {
	graphSource  sources.GraphSource
	recordSource sources.RecordSource
	validator    *validate.Validator
	context      schema.Context
}

// New creates a pipeline over the given sources. A nil context means the
// built-in vocabulary.
func New(graphSource sources.GraphSource, recordSource sources.RecordSource,
	validator *validate.Validator, ctx schema.Context) *Pipeline {
	if ctx == nil {
		ctx = schema.DefaultContext()
	}
	return &Pipeline{
		graphSource:  graphSource,
		recordSource: recordSource,
		validator:    validator,
		context:      ctx,
	}
}

// Run enriches the repository at the given URL. Codec and merge failures
// abort the run; validation issues never do, they are repaired by
// sanitization and reported in the result.
func (p *Pipeline) Run(ctx context.Context, repositoryURL string) (*Result, error) {
	slog.Info(fmt.Sprintf("Enriching metadata for %s", repositoryURL))

	graph, err := p.graphSource.ExtractGraph(ctx, repositoryURL)
	if err != nil {
		return nil, fmt.Errorf("extracting graph for %s: %w", repositoryURL, err)
	}
	inferred, err := p.recordSource.InferRecord(ctx, repositoryURL)
	if err != nil {
		return nil, fmt.Errorf("inferring record for %s: %w", repositoryURL, err)
	}

	// the inferencer speaks flat field names; put its record into graph form
	// before merging
	inferredNode, err := jsonld.Expand(inferred, p.context)
	if err != nil {
		return nil, err
	}
	merged, err := merge.Graphs(graph, inferredNode)
	if err != nil {
		return nil, err
	}

	record, err := jsonld.Project(merged.Graph)
	if err != nil {
		return nil, err
	}
	flat, err := record.Flatten()
	if err != nil {
		return nil, err
	}

	report := p.validator.Validate(flat)
	cleaned := validate.Sanitize(flat, report)
	typed, err := metadata.FromMap(cleaned)
	if err != nil {
		return nil, err
	}
	node, err := jsonld.Expand(cleaned, p.context)
	if err != nil {
		return nil, err
	}

	return &Result{
		Merged: merged,
		Record: typed,
		Flat:   cleaned,
		Node:   node,
		Report: report,
	}, nil
}
