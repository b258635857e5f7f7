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

// This package contains testing utilities for the FAIRification service.
package fairtest

import (
	"context"
	"log/slog"
	"os"

	"github.com/imaging-plaza/fairifier/jsonld"
	"github.com/imaging-plaza/fairifier/schema"
)

// Enables DEBUG log messages for the service's structured log (slog).
func EnableDebugLogging() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelDebug)
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
}

// ExtractorGraph returns a small but realistic extractor output: a software
// node with a referenced author and license, plus the referenced person node.
func ExtractorGraph() jsonld.LinkedGraph {
	return jsonld.LinkedGraph{
		{
			"@id":   "https://orcid.org/0000-0002-1825-0097",
			"@type": []any{schema.TypePerson},
			schema.PredName: []any{
				map[string]any{"@value": "Ada Example"},
			},
		},
		{
			"@id":   "https://github.com/example/tool",
			"@type": []any{schema.TypeSoftwareSourceCode},
			schema.PredName: []any{
				map[string]any{"@value": "example/tool"},
			},
			schema.PredAuthor: []any{
				map[string]any{"@id": "https://orcid.org/0000-0002-1825-0097"},
			},
			schema.PredLicense: []any{
				map[string]any{"@id": "https://spdx.org/licenses/MIT.html"},
			},
			schema.PredCodeRepository: []any{
				map[string]any{"@id": "https://github.com/example/tool"},
			},
		},
	}
}

// InferencerRecord returns a small inferencer output that both overlaps the
// extractor graph (license) and fills gaps (description, citation).
func InferencerRecord() map[string]any {
	return map[string]any{
		"license":     "https://spdx.org/licenses/Apache-2.0.html",
		"description": "A segmentation tool",
		"citation":    []any{"https://doi.org/10.1000/example"},
	}
}

// GraphSource is a canned graph source for tests.
type GraphSource struct {
	Graph jsonld.LinkedGraph
	Err   error
}

func (s GraphSource) ExtractGraph(ctx context.Context, repositoryURL string) (jsonld.LinkedGraph, error) {
	return s.Graph, s.Err
}

// RecordSource is a canned record source for tests.
type RecordSource struct {
	Record map[string]any
	Err    error
}

func (s RecordSource) InferRecord(ctx context.Context, repositoryURL string) (map[string]any, error) {
	return s.Record, s.Err
}
