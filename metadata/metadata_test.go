package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// a record exercising the author union and optional scalars
func sampleRecord() *SoftwareRecord {
	free := true
	return &SoftwareRecord{
		Name:           "lungs-segmentation",
		Description:    "Automated lung segmentation for CT scans.",
		CodeRepository: []string{"https://github.com/example/lungs-segmentation"},
		License:        "https://spdx.org/licenses/BSD-3-Clause.html",
		DateCreated:    "2025-03-10",
		Author: AgentList{
			Person{Name: "Ada Example", OrcidId: "https://orcid.org/0000-0002-1825-0097"},
			Organization{LegalName: "Example Institute"},
		},
		IsAccessibleForFree: &free,
		Discipline:          []Discipline{Biology, ComputerEngineering},
	}
}

func TestFlattenOmitsUnsetFields(t *testing.T) {
	flat, err := sampleRecord().Flatten()
	assert.Nil(t, err)
	assert.Equal(t, "lungs-segmentation", flat["name"])
	_, hasReadme := flat["readme"]
	assert.False(t, hasReadme, "unset field survived flattening")
	_, hasGPU := flat["requiresGPU"]
	assert.False(t, hasGPU, "unset bool survived flattening")
	assert.Equal(t, true, flat["isAccessibleForFree"])
}

func TestFromMapRoundTripsThroughFlatten(t *testing.T) {
	record := sampleRecord()
	flat, err := record.Flatten()
	assert.Nil(t, err)
	back, err := FromMap(flat)
	assert.Nil(t, err)
	assert.Equal(t, record, back)
}

func TestAgentListDecodesUnion(t *testing.T) {
	flat := map[string]any{
		"name": "tool",
		"author": []any{
			map[string]any{"name": "Ada Example"},
			map[string]any{"legalName": "Example Institute", "hasRorId": "https://ror.org/02s376052"},
		},
	}
	record, err := FromMap(flat)
	assert.Nil(t, err)
	assert.Len(t, record.Author, 2)
	assert.Equal(t, "Person", record.Author[0].EntityType())
	assert.Equal(t, "Organization", record.Author[1].EntityType())
	org := record.Author[1].(Organization)
	assert.Equal(t, "Example Institute", org.LegalName)
}

func TestAgentListRejectsNonObjectEntries(t *testing.T) {
	flat := map[string]any{"author": []any{"just a string"}}
	_, err := FromMap(flat)
	assert.NotNil(t, err)
}
