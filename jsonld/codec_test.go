package jsonld

// These tests exercise the two inverse conversions: projection of an
// extractor-style graph (entities referenced by node ID) and the round-trip
// property record -> expand -> project -> record.

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imaging-plaza/fairifier/metadata"
	"github.com/imaging-plaza/fairifier/schema"
)

// an extractor-style graph: the software node references its author and an
// organization by @id, and carries a predicate outside our vocabulary
const extractorGraph = `[
  {
    "@id": "https://github.com/example-org",
    "@type": ["http://schema.org/Organization"],
    "http://schema.org/legalName": [{"@value": "Example Institute"}],
    "http://schema.org/name": [{"@value": "example-org"}]
  },
  {
    "@id": "https://github.com/example/segmenter",
    "@type": ["http://schema.org/SoftwareSourceCode"],
    "http://schema.org/name": [{"@value": "example/segmenter"}],
    "http://schema.org/description": [{"@value": "A segmentation pipeline."}],
    "http://schema.org/author": [
      {"@id": "https://github.com/ada"},
      {"@id": "https://github.com/example-org"}
    ],
    "http://schema.org/codeRepository": [
      {"@id": "https://github.com/example/segmenter"}
    ],
    "http://schema.org/dateCreated": [{"@value": "2025-03-10"}],
    "http://schema.org/license": [
      {"@id": "https://spdx.org/licenses/BSD-3-Clause.html"}
    ],
    "http://schema.org/programmingLanguage": [{"@value": "Python"}],
    "http://schema.org/image": [
      {"@id": "https://example.org/screenshot.png"}
    ],
    "http://schema.org/version": [{"@value": "v1.0.9"}],
    "https://w3id.org/okn/o/sd#hasFunding": [
      {"@id": "https://example.org/funding/1"}
    ]
  },
  {
    "@id": "https://github.com/ada",
    "@type": ["http://schema.org/Person"],
    "http://schema.org/name": [{"@value": "Ada Example"}],
    "http://w3id.org/nfdi4ing/metadata4ing#orcidId": [
      {"@id": "https://orcid.org/0000-0002-1825-0097"}
    ],
    "http://schema.org/affiliation": [{"@value": "Example Institute"}]
  },
  {
    "@id": "https://example.org/funding/1",
    "@type": ["https://w3id.org/okn/o/sd#FundingInformation"],
    "http://schema.org/identifier": [{"@value": "grant-42"}],
    "https://w3id.org/okn/o/sd#fundingGrant": [{"@value": "SNSF 42"}],
    "https://w3id.org/okn/o/sd#fundingSource": [
      {"@id": "https://github.com/example-org"}
    ]
  }
]`

func loadGraph(t *testing.T, text string) LinkedGraph {
	var graph LinkedGraph
	err := json.Unmarshal([]byte(text), &graph)
	assert.Nil(t, err)
	return graph
}

func TestProjectExtractorGraph(t *testing.T) {
	record, err := Project(loadGraph(t, extractorGraph))
	assert.Nil(t, err)
	assert.NotNil(t, record)

	assert.Equal(t, "example/segmenter", record.Name)
	assert.Equal(t, "A segmentation pipeline.", record.Description)
	assert.Equal(t, "2025-03-10", record.DateCreated)
	assert.Equal(t, "https://spdx.org/licenses/BSD-3-Clause.html", record.License)
	assert.Equal(t, []string{"https://github.com/example/segmenter"}, record.CodeRepository)
	assert.Equal(t, []string{"Python"}, record.ProgrammingLanguage)

	// referenced entities are dereferenced and dispatched on their @type
	assert.Len(t, record.Author, 2)
	person := record.Author[0].(metadata.Person)
	assert.Equal(t, "Ada Example", person.Name)
	assert.Equal(t, "https://orcid.org/0000-0002-1825-0097", person.OrcidId)
	assert.Equal(t, []string{"Example Institute"}, person.Affiliation)
	org := record.Author[1].(metadata.Organization)
	assert.Equal(t, "Example Institute", org.LegalName)

	// funding dereferences its source organization transitively
	assert.Len(t, record.HasFunding, 1)
	assert.Equal(t, "grant-42", record.HasFunding[0].Identifier)
	assert.NotNil(t, record.HasFunding[0].FundingSource)
	assert.Equal(t, "Example Institute", record.HasFunding[0].FundingSource.LegalName)

	// raw image URLs are wrapped with the default keyword
	assert.Equal(t, []metadata.Image{
		{ContentURL: "https://example.org/screenshot.png", Keywords: metadata.KeywordIllustrativeImage},
	}, record.Image)
}

func TestProjectReturnsNilWithoutSoftwareNode(t *testing.T) {
	graph := loadGraph(t, `[
	  {"@id": "x", "@type": ["http://schema.org/Person"],
	   "http://schema.org/name": [{"@value": "Ada"}]}
	]`)
	record, err := Project(graph)
	assert.Nil(t, err)
	assert.Nil(t, record)
}

func TestProjectSkipsDanglingReferences(t *testing.T) {
	graph := loadGraph(t, `[
	  {"@id": "s", "@type": ["http://schema.org/SoftwareSourceCode"],
	   "http://schema.org/name": [{"@value": "tool"}],
	   "http://schema.org/author": [{"@id": "missing-node"}]}
	]`)
	record, err := Project(graph)
	assert.Nil(t, err)
	assert.Empty(t, record.Author)
}

func TestExpandRejectsUnknownField(t *testing.T) {
	_, err := Expand(map[string]any{"downloadCount": 12}, schema.DefaultContext())
	assert.NotNil(t, err)
	mismatch, ok := err.(SchemaMismatchError)
	assert.True(t, ok)
	assert.Equal(t, "downloadCount", mismatch.Field)
}

func TestExpandBoxesValues(t *testing.T) {
	node, err := Expand(map[string]any{
		"name":           "tool",
		"codeRepository": []any{"https://github.com/example/tool"},
		"requiresGPU":    true,
	}, schema.DefaultContext())
	assert.Nil(t, err)

	// singular fields still emit a list of boxed values
	assert.Equal(t, []any{map[string]any{"@value": "tool"}}, node[schema.PredName])
	assert.Equal(t, []any{map[string]any{"@id": "https://github.com/example/tool"}},
		node[schema.PredCodeRepository])
	assert.Equal(t, []any{map[string]any{"@value": true}}, node[schema.PredRequiresGPU])
	assert.True(t, node.HasType(schema.TypeSoftwareSourceCode))
}

func TestRoundTripThroughExpandAndProject(t *testing.T) {
	gpu := true
	memory := 16
	original := &metadata.SoftwareRecord{
		Name:                "segmenter",
		Description:         "A segmentation pipeline.",
		CodeRepository:      []string{"https://github.com/example/segmenter"},
		Citation:            []string{"https://doi.org/10.1000/182"},
		DateCreated:         "2025-03-10",
		DatePublished:       "2025-03-28",
		License:             "https://spdx.org/licenses/MIT.html",
		URL:                 "https://example.org/segmenter",
		Identifier:          "segmenter",
		ProgrammingLanguage: []string{"Python", "C++"},
		RequiresGPU:         &gpu,
		MemoryRequirements:  &memory,
		Discipline:          []metadata.Discipline{metadata.Biology},
		RepositoryType:      metadata.RepositorySoftware,
		Author: metadata.AgentList{
			metadata.Person{Name: "Ada Example", Affiliation: []string{"Example Institute"}},
			metadata.Organization{LegalName: "Example Institute"},
		},
		HasParameter: []metadata.FormalParameter{
			{Name: "input", HasFormat: "tiff"},
		},
		HasSoftwareImage: []metadata.SoftwareImage{
			{Name: "segmenter", SoftwareVersion: "1.0.9",
				AvailableInRegistry: "https://hub.docker.com/r/example/segmenter"},
		},
		Image: []metadata.Image{
			{ContentURL: "https://example.org/shot.png", Keywords: metadata.KeywordIllustrativeImage},
		},
	}

	flat, err := original.Flatten()
	assert.Nil(t, err)
	node, err := Expand(flat, schema.DefaultContext())
	assert.Nil(t, err)
	projected, err := Project(LinkedGraph{node})
	assert.Nil(t, err)
	assert.Equal(t, original, projected)
}
