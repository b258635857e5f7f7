package export

// These tests check the record -> data package conversion.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imaging-plaza/fairifier/metadata"
)

func exportableRecord() *metadata.SoftwareRecord {
	return &metadata.SoftwareRecord{
		Name:           "DeepCell 2!",
		Description:    "Deep learning for single-cell analysis",
		URL:            "https://deepcell.example.org",
		License:        "https://spdx.org/licenses/MIT.html",
		CodeRepository: []string{"https://github.com/example/deepcell"},
		Author: metadata.AgentList{
			metadata.Person{Name: "Ada Example", Affiliation: []string{"EPFL"}},
			metadata.Organization{LegalName: "Imaging Plaza"},
		},
		ApplicationCategory: []string{"segmentation"},
		ImagingModality:     []string{"fluorescence microscopy"},
	}
}

func TestPackage(t *testing.T) {
	pkg, err := Package(exportableRecord())
	assert.Nil(t, err)

	descriptor := pkg.Descriptor()
	assert.Equal(t, "deepcell-2", descriptor["name"])
	assert.Equal(t, "DeepCell 2!", descriptor["title"])
	assert.Equal(t, "https://deepcell.example.org", descriptor["homepage"])
	assert.Equal(t, []string{"code-repository-1"}, pkg.ResourceNames())

	contributors := descriptor["contributors"].([]any)
	assert.Len(t, contributors, 2)
	first := contributors[0].(map[string]any)
	assert.Equal(t, "Ada Example", first["title"])
	assert.Equal(t, "EPFL", first["organization"])

	keywords := descriptor["keywords"].([]any)
	assert.Contains(t, keywords, "segmentation")
	assert.Contains(t, keywords, "fluorescence microscopy")
}

func TestPackageRequiresARepository(t *testing.T) {
	record := exportableRecord()
	record.CodeRepository = nil
	_, err := Package(record)
	assert.NotNil(t, err)
	_, ok := err.(NoResourcesError)
	assert.True(t, ok)
}
