package validate

// These tests pin the validation rules (required fields, formats, nested
// entities), the advisory nature of reachability probing, and the sanitizer's
// repair-and-prune behavior, including its fixpoint property.

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// a record that passes every structural and format check
func validRecord() map[string]any {
	return map[string]any{
		"name":        "deepcell",
		"description": "Deep learning for single-cell analysis",
		"author": []any{
			map[string]any{"name": "Ada Example", "orcidId": "https://orcid.org/0000-0002-1825-0097"},
		},
		"codeRepository": []any{"https://github.com/example/deepcell"},
		"citation":       []any{"https://doi.org/10.1000/example"},
		"dateCreated":    "2021-03-15",
		"datePublished":  "2021-06-01",
		"license":        "https://spdx.org/licenses/MIT.html",
		"url":            "https://deepcell.example.org",
		"identifier":     "https://doi.org/10.1000/example",
		"hasSoftwareImage": []any{
			map[string]any{
				"name":                "deepcell",
				"softwareVersion":     "1.2.3",
				"availableInRegistry": "https://hub.docker.com/r/example/deepcell",
			},
		},
		"hasParameter": []any{
			map[string]any{"name": "threshold", "encodingFormat": "float"},
		},
		"hasFunding": []any{
			map[string]any{"identifier": "SNSF 42", "fundingGrant": "Imaging Plaza"},
		},
	}
}

func newTestValidator(options ...Option) *Validator {
	return New(append([]Option{WithoutProbes()}, options...)...)
}

func TestValidRecordPasses(t *testing.T) {
	report := newTestValidator().Validate(validRecord())
	assert.True(t, report.Valid())
	assert.Equal(t, "valid", report.Status())
	assert.Empty(t, report.Issues)
	assert.Empty(t, report.InvalidFields)
}

func TestMissingRequiredFields(t *testing.T) {
	record := validRecord()
	delete(record, "description")
	record["hasFunding"] = []any{} // empty list counts as missing

	report := newTestValidator().Validate(record)
	assert.False(t, report.Valid())
	assert.Contains(t, report.Issues, "Missing required field: description")
	assert.Contains(t, report.Issues, "Missing required field: hasFunding")
	assert.Equal(t, WholeFieldInvalid, report.InvalidFields["description"].Kind)
}

func TestLicenseMustBeSPDX(t *testing.T) {
	record := validRecord()
	record["license"] = "https://opensource.org/licenses/MIT"

	report := newTestValidator().Validate(record)
	assert.False(t, report.Valid())
	reason, flagged := report.InvalidFields["license"]
	assert.True(t, flagged)
	assert.Equal(t, WholeFieldInvalid, reason.Kind)
}

func TestDateFormat(t *testing.T) {
	record := validRecord()
	record["dateCreated"] = "15/03/2021"

	report := newTestValidator().Validate(record)
	assert.Equal(t, WholeFieldInvalid, report.InvalidFields["dateCreated"].Kind)
}

func TestSingularURLField(t *testing.T) {
	record := validRecord()
	record["readme"] = "ftp://example.org/readme" // wrong scheme

	report := newTestValidator().Validate(record)
	assert.Equal(t, WholeFieldInvalid, report.InvalidFields["readme"].Kind)
}

func TestURLListFlagsOnlyBadEntries(t *testing.T) {
	record := validRecord()
	record["codeRepository"] = []any{
		"https://github.com/example/deepcell",
		"not a url",
	}

	report := newTestValidator().Validate(record)
	reason := report.InvalidFields["codeRepository"]
	assert.Equal(t, PartialListInvalid, reason.Kind)
	assert.Equal(t, []string{"not a url"}, reason.BadItems)
}

func TestURLListRejectsNonList(t *testing.T) {
	record := validRecord()
	record["citation"] = "https://doi.org/10.1000/example"

	report := newTestValidator().Validate(record)
	assert.Equal(t, WholeFieldInvalid, report.InvalidFields["citation"].Kind)
}

func TestAuthorChecks(t *testing.T) {
	record := validRecord()
	record["author"] = []any{
		map[string]any{"name": "Ada Example", "orcidId": "0000-0002-1825-0097"}, // bare ID, not a URL
		map[string]any{"affiliation": "EPFL"},                                   // no name
	}

	report := newTestValidator().Validate(record)
	reason := report.InvalidFields["author"]
	assert.Equal(t, NestedEntityInvalid, reason.Kind)
	assert.Contains(t, reason.Subfields, "Invalid ORCID ID")
	assert.Contains(t, reason.Subfields, "Missing name")
}

func TestAuthorOrcidMustBeAString(t *testing.T) {
	record := validRecord()
	record["author"] = []any{
		// a decoded JSON number, as a client sending a bare numeric ID produces
		map[string]any{"name": "Ada Example", "orcidId": float64(21825)},
	}

	report := newTestValidator().Validate(record)
	assert.False(t, report.Valid())
	reason := report.InvalidFields["author"]
	assert.Equal(t, NestedEntityInvalid, reason.Kind)
	assert.Contains(t, reason.Subfields, "Invalid ORCID ID")
}

func TestSoftwareImageChecks(t *testing.T) {
	record := validRecord()
	record["hasSoftwareImage"] = []any{
		map[string]any{"name": "deepcell", "softwareVersion": "v1.2", "availableInRegistry": "docker pull deepcell"},
	}

	report := newTestValidator().Validate(record)
	reason := report.InvalidFields["hasSoftwareImage"]
	assert.Equal(t, NestedEntityInvalid, reason.Kind)
	assert.Contains(t, reason.Subfields, "Invalid version")
	assert.Contains(t, reason.Subfields, "Invalid URL")
}

func TestReachabilityProducesWarningsOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/gone" {
				w.WriteHeader(http.StatusNotFound)
			}
		}))
	defer server.Close()

	record := validRecord()
	record["url"] = server.URL + "/ok"
	record["readme"] = server.URL + "/gone"
	record["codeRepository"] = []any{server.URL + "/repo"}
	record["citation"] = []any{server.URL + "/cite"}

	report := New(WithHTTPClient(server.Client()), WithProbeWorkers(2)).
		Validate(record)

	assert.True(t, report.Valid(), "unreachable URLs must not block the record")
	assert.Equal(t, []string{"Unreachable URL: " + server.URL + "/gone"},
		report.Warnings)
	assert.Empty(t, report.InvalidFields)
}

//---------------
// sanitization
//---------------

func TestSanitizeRemovesWholeFieldViolations(t *testing.T) {
	record := validRecord()
	record["license"] = "https://opensource.org/licenses/MIT"
	record["dateCreated"] = "yesterday"

	v := newTestValidator()
	cleaned := Sanitize(record, v.Validate(record))

	_, hasLicense := cleaned["license"]
	_, hasDate := cleaned["dateCreated"]
	assert.False(t, hasLicense)
	assert.False(t, hasDate)
	assert.Equal(t, "deepcell", cleaned["name"], "valid fields survive")
}

func TestSanitizeKeepsValidListEntries(t *testing.T) {
	record := validRecord()
	record["codeRepository"] = []any{
		"https://github.com/example/deepcell",
		"not a url",
		"https://gitlab.com/example/deepcell",
	}

	v := newTestValidator()
	cleaned := Sanitize(record, v.Validate(record))
	assert.Equal(t, []any{
		"https://github.com/example/deepcell",
		"https://gitlab.com/example/deepcell",
	}, cleaned["codeRepository"])
}

func TestSanitizeRepairsAuthors(t *testing.T) {
	record := validRecord()
	record["author"] = []any{
		map[string]any{"name": "Ada Example", "orcidId": "0000-0002-1825-0097"},
		map[string]any{"affiliation": "EPFL"},
	}

	v := newTestValidator()
	cleaned := Sanitize(record, v.Validate(record))

	authors := cleaned["author"].([]any)
	assert.Len(t, authors, 1, "nameless author entry removed")
	author := authors[0].(map[string]any)
	assert.Equal(t, "Ada Example", author["name"])
	_, hasOrcid := author["orcidId"]
	assert.False(t, hasOrcid, "invalid ORCID stripped")
}

func TestSanitizeStripsNonStringOrcid(t *testing.T) {
	record := validRecord()
	record["author"] = []any{
		map[string]any{"name": "Ada Example", "orcidId": float64(21825)},
	}

	v := newTestValidator()
	cleaned := Sanitize(record, v.Validate(record))

	author := cleaned["author"].([]any)[0].(map[string]any)
	_, hasOrcid := author["orcidId"]
	assert.False(t, hasOrcid)
	assert.True(t, v.Validate(cleaned).Valid())
}

func TestSanitizeRepairsSoftwareImages(t *testing.T) {
	record := validRecord()
	record["hasSoftwareImage"] = []any{
		map[string]any{"name": "deepcell", "softwareVersion": "v1.2", "availableInRegistry": "https://hub.docker.com/r/example/deepcell"},
	}

	v := newTestValidator()
	cleaned := Sanitize(record, v.Validate(record))

	images := cleaned["hasSoftwareImage"].([]any)
	assert.Len(t, images, 1)
	image := images[0].(map[string]any)
	_, hasVersion := image["softwareVersion"]
	assert.False(t, hasVersion)
	assert.Equal(t, "https://hub.docker.com/r/example/deepcell",
		image["availableInRegistry"])
}

func TestSanitizePrunesEmptyValues(t *testing.T) {
	record := validRecord()
	record["readme"] = ""
	record["isBasedOn"] = []any{}
	record["featureList"] = []any{map[string]any{}}

	v := newTestValidator()
	cleaned := Sanitize(record, v.Validate(record))

	for _, field := range []string{"readme", "isBasedOn", "featureList"} {
		_, present := cleaned[field]
		assert.False(t, present, field)
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	record := validRecord()
	record["license"] = "bogus"
	v := newTestValidator()
	Sanitize(record, v.Validate(record))
	assert.Equal(t, "bogus", record["license"])
}

// A surfaced report must decode back into a Report, reason payloads included,
// so API clients (and our own service responses) can round-trip it.
func TestReportSurvivesJSONRoundTrip(t *testing.T) {
	record := validRecord()
	record["license"] = "https://opensource.org/licenses/MIT"
	record["codeRepository"] = []any{"https://github.com/example/deepcell", "bogus"}
	record["author"] = []any{
		map[string]any{"name": "Ada Example", "orcidId": "0000-0002-1825-0097"},
	}

	report := newTestValidator().Validate(record)
	encoded, err := json.Marshal(report)
	assert.Nil(t, err)

	var decoded Report
	assert.Nil(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, report.Issues, decoded.Issues)
	assert.Equal(t, report.Warnings, decoded.Warnings)
	assert.Equal(t, "License is not a valid SPDX URL: https://opensource.org/licenses/MIT",
		decoded.InvalidFields["license"].Message)
	assert.Equal(t, []string{"bogus"}, decoded.InvalidFields["codeRepository"].BadItems)
	// the two list-shaped kinds collapse to one on the wire
	assert.Equal(t, []string{"Invalid ORCID ID"}, decoded.InvalidFields["author"].BadItems)
}

// Running sanitization a second time changes nothing: the record reaches a
// fixpoint after one pass.
func TestSanitizeIsIdempotent(t *testing.T) {
	record := validRecord()
	record["license"] = "https://opensource.org/licenses/MIT"
	record["codeRepository"] = []any{"https://github.com/example/deepcell", "bogus"}
	record["author"] = []any{
		map[string]any{"name": "Ada Example", "orcidId": "0000-0002-1825-0097"},
		map[string]any{"affiliation": "EPFL"},
	}
	record["readme"] = ""

	v := newTestValidator()
	once := Sanitize(record, v.Validate(record))
	twice := Sanitize(once, v.Validate(once))
	assert.Equal(t, once, twice)
}
