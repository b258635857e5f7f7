package schema

// These tests pin down the registry tables: the predicate/field mapping must
// be bijective, and the cardinality declarations must agree with the record
// model.

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldForPredicateRoundTrips(t *testing.T) {
	for name, info := range softwareFields {
		mapped, found := FieldForPredicate(info.Predicate)
		assert.True(t, found, "predicate %s has no field mapping", info.Predicate)
		assert.Equal(t, name, mapped)
	}
	for name, info := range entityFields {
		mapped, found := FieldForPredicate(info.Predicate)
		assert.True(t, found, "predicate %s has no field mapping", info.Predicate)
		assert.Equal(t, name, mapped)
	}
}

func TestFieldForPredicateRejectsUnknownIRIs(t *testing.T) {
	_, found := FieldForPredicate("http://schema.org/downloadUrl")
	assert.False(t, found)
	_, found = FieldForPredicate("not-an-iri")
	assert.False(t, found)
}

func TestCardinalityDeclarations(t *testing.T) {
	tests := []struct {
		field string
		list  bool
		kind  FieldKind
	}{
		{"name", false, KindString},
		{"codeRepository", true, KindURL},
		{"citation", true, KindURL},
		{"dateCreated", false, KindDate},
		{"license", false, KindString},
		{"author", true, KindEntity},
		{"memoryRequirements", false, KindInt},
		{"requiresGPU", false, KindBool},
		{"discipline", true, KindEnum},
		{"repositoryType", false, KindEnum},
		{"hasSoftwareImage", true, KindEntity},
		{"orcidId", false, KindURL},
		{"hasDimensionality", false, KindInt},
	}
	for _, tc := range tests {
		info, found := InfoFor(tc.field)
		assert.True(t, found, "field %s not declared", tc.field)
		assert.Equal(t, tc.list, info.List, "wrong cardinality for %s", tc.field)
		assert.Equal(t, tc.kind, info.Kind, "wrong kind for %s", tc.field)
	}
}

func TestIsListFieldForUnknownField(t *testing.T) {
	assert.False(t, IsListField("noSuchField"))
}

func TestDefaultContextCoversAllFields(t *testing.T) {
	ctx := DefaultContext()
	for _, name := range SoftwareFieldNames() {
		iri, found := ctx.Resolve(name)
		assert.True(t, found, "context is missing field %s", name)
		info, _ := InfoFor(name)
		assert.Equal(t, info.Predicate, iri)
	}
}

func TestParseContextAcceptsBothShapes(t *testing.T) {
	bare := []byte(`{"name": "http://schema.org/name"}`)
	ctx, err := ParseContext(bare)
	assert.Nil(t, err)
	iri, found := ctx.Resolve("name")
	assert.True(t, found)
	assert.Equal(t, "http://schema.org/name", iri)

	wrapped := []byte(`{"@context": {
		"readme": {"@id": "https://w3id.org/okn/o/sd#readme"},
		"@vocab": "http://schema.org/"
	}}`)
	ctx, err = ParseContext(wrapped)
	assert.Nil(t, err)
	iri, found = ctx.Resolve("readme")
	assert.True(t, found)
	assert.Equal(t, "https://w3id.org/okn/o/sd#readme", iri)
	_, found = ctx.Resolve("@vocab")
	assert.False(t, found)
}

func TestParseContextRejectsGarbage(t *testing.T) {
	_, err := ParseContext([]byte(`[1, 2, 3]`))
	assert.NotNil(t, err)
	_, err = ParseContext([]byte(`{"name": {"no-id": true}}`))
	assert.NotNil(t, err)
}
