package frontend

// These tests pin the form-key renaming (including on nested entities), the
// primitive conversions (dates to midnight-UTC timestamps, enums to strings),
// and the exclusion of unset fields.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imaging-plaza/fairifier/metadata"
)

func sampleRecord() *metadata.SoftwareRecord {
	free := true
	return &metadata.SoftwareRecord{
		Name:           "deepcell",
		Description:    "Deep learning for single-cell analysis",
		DateCreated:    "2021-03-15",
		License:        "https://spdx.org/licenses/MIT.html",
		CodeRepository: []string{"https://github.com/example/deepcell"},
		Author: metadata.AgentList{
			metadata.Person{
				Name:        "Ada Example",
				OrcidId:     "https://orcid.org/0000-0002-1825-0097",
				Affiliation: []string{"EPFL"},
			},
			metadata.Organization{
				LegalName: "Imaging Plaza",
				HasRorId:  "https://ror.org/02s376052",
			},
		},
		IsAccessibleForFree: &free,
		Image: []metadata.Image{
			{ContentURL: "https://example.org/shot.png",
				Keywords: metadata.KeywordIllustrativeImage},
		},
		HasFunding: []metadata.FundingInformation{
			{
				Identifier:   "SNSF 42",
				FundingGrant: "Imaging Plaza",
				FundingSource: &metadata.Organization{
					LegalName: "SNSF",
					HasRorId:  "https://ror.org/00yjd3n13",
				},
			},
		},
		Discipline: []metadata.Discipline{metadata.Biology},
	}
}

func TestProjectRenamesTopLevelKeys(t *testing.T) {
	form := Project(sampleRecord())

	assert.Equal(t, "deepcell", form["schema:name"])
	assert.Equal(t, "https://spdx.org/licenses/MIT.html", form["schema:license"])
	assert.Equal(t, []any{"https://github.com/example/deepcell"},
		form["schema:codeRepository"])
	// no unprefixed keys leak through
	_, present := form["name"]
	assert.False(t, present)
}

func TestProjectConvertsDatesToMidnightUTC(t *testing.T) {
	form := Project(sampleRecord())
	assert.Equal(t, "2021-03-15T00:00:00Z", form["schema:dateCreated"])
}

func TestProjectRenamesNestedEntityKeys(t *testing.T) {
	form := Project(sampleRecord())

	authors := form["schema:author"].([]any)
	assert.Len(t, authors, 2)
	person := authors[0].(map[string]any)
	assert.Equal(t, "Ada Example", person["schema:name"])
	assert.Equal(t, "https://orcid.org/0000-0002-1825-0097", person["md4i:orcidId"])
	assert.Equal(t, []any{"EPFL"}, person["schema:affiliation"])
	org := authors[1].(map[string]any)
	assert.Equal(t, "Imaging Plaza", org["schema:legalName"])
	assert.Equal(t, "https://ror.org/02s376052", org["md4i:hasRorId"])
}

func TestProjectRecursesThroughFundingSource(t *testing.T) {
	form := Project(sampleRecord())

	funding := form["sd:hasFunding"].([]any)[0].(map[string]any)
	assert.Equal(t, "SNSF 42", funding["schema:identifier"])
	source := funding["sd:fundingSource"].(map[string]any)
	assert.Equal(t, "SNSF", source["schema:legalName"])
}

func TestProjectConvertsEnumsToStrings(t *testing.T) {
	form := Project(sampleRecord())

	image := form["schema:image"].([]any)[0].(map[string]any)
	assert.Equal(t, "illustrative image", image["schema:keywords"])
	assert.Equal(t, []any{string(metadata.Biology)}, form["imag:discipline"])
}

func TestProjectExcludesUnsetFields(t *testing.T) {
	form := Project(sampleRecord())

	for _, key := range []string{"sd:readme", "schema:datePublished", "imag:requiresGPU"} {
		_, present := form[key]
		assert.False(t, present, key)
	}
	// pointer fields that are set survive
	assert.Equal(t, true, form["schema:isAccessibleForFree"])
}

func TestProjectNilRecord(t *testing.T) {
	assert.Equal(t, map[string]any{}, Project(nil))
}
