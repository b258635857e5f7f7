package pipeline

// These tests run the whole enrichment pipeline over canned sources and check
// the merge priority, repair, and re-expansion behavior end to end.

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imaging-plaza/fairifier/jsonld"
	"github.com/imaging-plaza/fairifier/merge"
	"github.com/imaging-plaza/fairifier/schema"
	"github.com/imaging-plaza/fairifier/validate"
)

// a graph source returning a fixed extractor graph
type cannedGraph struct {
	graph jsonld.LinkedGraph
	err   error
}

func (c cannedGraph) ExtractGraph(ctx context.Context, repositoryURL string) (jsonld.LinkedGraph, error) {
	return c.graph, c.err
}

// a record source returning a fixed inferencer record
type cannedRecord struct {
	record map[string]any
	err    error
}

func (c cannedRecord) InferRecord(ctx context.Context, repositoryURL string) (map[string]any, error) {
	return c.record, c.err
}

func extractorGraph() jsonld.LinkedGraph {
	return jsonld.LinkedGraph{
		{
			"@id":   "https://github.com/example/tool",
			"@type": []any{schema.TypeSoftwareSourceCode},
			schema.PredName: []any{
				map[string]any{"@value": "example/tool"},
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

func inferencerRecord() map[string]any {
	return map[string]any{
		// overlaps with the extractor and must lose
		"license": "https://spdx.org/licenses/Apache-2.0.html",
		// fills a gap, but with one bad entry the sanitizer must drop
		"citation":    []any{"https://doi.org/10.1000/example", "see the paper"},
		"description": "A segmentation tool",
	}
}

func newTestPipeline() *Pipeline {
	return New(
		cannedGraph{graph: extractorGraph()},
		cannedRecord{record: inferencerRecord()},
		validate.New(validate.WithoutProbes()),
		nil)
}

func TestRunMergesValidatesAndRepairs(t *testing.T) {
	result, err := newTestPipeline().Run(context.Background(),
		"https://github.com/example/tool")
	assert.Nil(t, err)

	// extractor wins the license overlap
	assert.Equal(t, "https://spdx.org/licenses/MIT.html", result.Record.License)
	// inferencer fills the description gap
	assert.Equal(t, "A segmentation tool", result.Record.Description)
	// the bad citation entry is repaired away
	assert.Equal(t, []string{"https://doi.org/10.1000/example"},
		result.Record.Citation)

	// sparse record: required fields are reported missing, but a record is
	// still produced
	assert.False(t, result.Report.Valid())
	assert.Contains(t, result.Report.Issues, "Missing required field: author")

	// the re-expanded node carries only sanitized values
	assert.Equal(t, []any{map[string]any{"@value": "A segmentation tool"}},
		result.Node[schema.PredDescription])
	_, hasCitation := result.Flat["citation"]
	assert.True(t, hasCitation)
}

func TestRunKeepsMergedDocument(t *testing.T) {
	result, err := newTestPipeline().Run(context.Background(),
		"https://github.com/example/tool")
	assert.Nil(t, err)

	anchor := result.Merged.Graph.FirstOfType(schema.TypeSoftwareSourceCode)
	assert.NotNil(t, anchor)
	// the losing inferencer license never reaches the merged document
	assert.Equal(t, []any{
		map[string]any{"@id": "https://spdx.org/licenses/MIT.html"},
	}, anchor[schema.PredLicense])
}

func TestRunFailsWhenExtractionFails(t *testing.T) {
	p := New(
		cannedGraph{err: errors.New("gimie is down")},
		cannedRecord{record: inferencerRecord()},
		validate.New(validate.WithoutProbes()),
		nil)
	_, err := p.Run(context.Background(), "https://github.com/example/tool")
	assert.NotNil(t, err)
}

func TestRunFailsWithoutAnchorNode(t *testing.T) {
	p := New(
		cannedGraph{graph: jsonld.LinkedGraph{
			{"@id": "x", "@type": []any{schema.TypePerson}},
		}},
		cannedRecord{record: inferencerRecord()},
		validate.New(validate.WithoutProbes()),
		nil)
	_, err := p.Run(context.Background(), "https://github.com/example/tool")
	assert.NotNil(t, err)
	_, ok := err.(merge.MissingPrimaryNodeError)
	assert.True(t, ok)
}

func TestRunFailsOnUnknownInferredField(t *testing.T) {
	p := New(
		cannedGraph{graph: extractorGraph()},
		cannedRecord{record: map[string]any{"fancyNewField": "x"}},
		validate.New(validate.WithoutProbes()),
		nil)
	_, err := p.Run(context.Background(), "https://github.com/example/tool")
	assert.NotNil(t, err)
	_, ok := err.(jsonld.SchemaMismatchError)
	assert.True(t, ok)
}
