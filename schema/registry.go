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

// Package schema is the single source of truth mapping the predicate IRIs of
// the linked-data vocabulary to the field names of the software record, and
// declaring the cardinality and logical type of every field. The tables here
// are static and load-once: the graph codec, the merger and the validator all
// consult them, and any field added to the record model must gain an entry
// here or the codec will silently drop it.
package schema

import "fmt"

// FieldKind is the logical type of a record field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindURL
	KindDate
	KindInt
	KindBool
	KindEnum
	// KindEntity marks fields whose values are nested entities referenced by
	// node ID in the expanded graph form.
	KindEntity
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindURL:
		return "url"
	case KindDate:
		return "date"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindEntity:
		return "entity"
	}
	return "unknown"
}

// FieldInfo declares the cardinality and logical type of a single record
// field.
type FieldInfo struct {
	// the predicate IRI the field expands to
	Predicate string
	// the logical type of the field's value(s)
	Kind FieldKind
	// true if the field holds an ordered list of values
	List bool
}

// softwareFields declares every field of the software record. The map is
// keyed by the flat field name used in un-expanded records.
var softwareFields = map[string]FieldInfo{
	"name":                               {PredName, KindString, false},
	"applicationCategory":                {PredApplicationCategory, KindString, true},
	"citation":                           {PredCitation, KindURL, true},
	"codeRepository":                     {PredCodeRepository, KindURL, true},
	"conditionsOfAccess":                 {PredConditionsOfAccess, KindString, false},
	"dateCreated":                        {PredDateCreated, KindDate, false},
	"datePublished":                      {PredDatePublished, KindDate, false},
	"description":                        {PredDescription, KindString, false},
	"featureList":                        {PredFeatureList, KindString, true},
	"image":                              {PredImage, KindEntity, true},
	"isAccessibleForFree":                {PredIsAccessibleForFree, KindBool, false},
	"isBasedOn":                          {PredIsBasedOn, KindURL, false},
	"isPluginModuleOf":                   {PredIsPluginModuleOf, KindString, true},
	"license":                            {PredLicense, KindString, false},
	"author":                             {PredAuthor, KindEntity, true},
	"relatedToOrganization":              {PredRelatedToOrganization, KindString, true},
	"relatedToOrganizationJustification": {PredRelatedToOrgJustif, KindString, true},
	"operatingSystem":                    {PredOperatingSystem, KindString, true},
	"programmingLanguage":                {PredProgrammingLanguage, KindString, true},
	"softwareRequirements":               {PredSoftwareRequirements, KindString, true},
	"processorRequirements":              {PredProcessorReqs, KindString, true},
	"memoryRequirements":                 {PredMemoryRequirements, KindInt, false},
	"requiresGPU":                        {PredRequiresGPU, KindBool, false},
	"supportingData":                     {PredSupportingData, KindEntity, true},
	"url":                                {PredURL, KindURL, false},
	"identifier":                         {PredIdentifier, KindString, false},
	"hasAcknowledgements":                {PredHasAcknowledgements, KindString, false},
	"hasDocumentation":                   {PredHasDocumentation, KindURL, false},
	"hasExecutableInstructions":          {PredHasExecInstructions, KindString, false},
	"hasExecutableNotebook":              {PredHasExecNotebook, KindEntity, true},
	"hasParameter":                       {PredHasParameter, KindEntity, true},
	"readme":                             {PredReadme, KindURL, false},
	"hasFunding":                         {PredHasFunding, KindEntity, true},
	"hasSoftwareImage":                   {PredHasSoftwareImage, KindEntity, true},
	"imagingModality":                    {PredImagingModality, KindString, true},
	"fairLevel":                          {PredFairLevel, KindString, false},
	"graph":                              {PredGraph, KindString, false},
	"discipline":                         {PredDiscipline, KindEnum, true},
	"disciplineJustification":            {PredDisciplineJustif, KindString, true},
	"repositoryType":                     {PredRepositoryType, KindEnum, false},
	"repositoryTypeJustification":        {PredRepositoryTypeJustif, KindString, true},
}

// entityFields declares the fields that occur on nested entities but not on
// the software record itself. They participate in predicate lookup during
// projection of sub-entities.
var entityFields = map[string]FieldInfo{
	"orcidId":              {PredOrcidID, KindURL, false},
	"affiliation":          {PredAffiliation, KindString, true},
	"legalName":            {PredLegalName, KindString, false},
	"hasRorId":             {PredHasRorID, KindURL, false},
	"fundingGrant":         {PredFundingGrant, KindString, false},
	"fundingSource":        {PredFundingSource, KindEntity, false},
	"encodingFormat":       {PredEncodingFormat, KindURL, false},
	"hasDimensionality":    {PredHasDimensionality, KindInt, false},
	"hasFormat":            {PredHasFormat, KindString, false},
	"defaultValue":         {PredDefaultValue, KindString, false},
	"valueRequired":        {PredValueRequired, KindBool, false},
	"softwareVersion":      {PredSoftwareVersion, KindString, false},
	"availableInRegistry":  {PredAvailableInRegistry, KindURL, false},
	"contentUrl":           {PredContentURL, KindURL, false},
	"measurementTechnique": {PredMeasurementTechnique, KindString, false},
	"variableMeasured":     {PredVariableMeasured, KindString, false},
	"keywords":             {PredKeywords, KindEnum, false},
}

// fieldForPredicate is the inverse index, built once at load time from the
// two declarative tables above.
var fieldForPredicate = func() map[string]string {
	inverse := make(map[string]string)
	for _, table := range []map[string]FieldInfo{softwareFields, entityFields} {
		for name, info := range table {
			if prev, found := inverse[info.Predicate]; found && prev != name {
				panic(fmt.Sprintf("schema: predicate %s mapped to both %s and %s",
					info.Predicate, prev, name))
			}
			inverse[info.Predicate] = name
		}
	}
	return inverse
}()

// FieldForPredicate returns the flat field name for a predicate IRI. The
// second return value is false for predicates outside the vocabulary, which
// the codec skips.
func FieldForPredicate(predicate string) (string, bool) {
	name, found := fieldForPredicate[predicate]
	return name, found
}

// InfoFor returns the declared cardinality and type of a record or entity
// field.
func InfoFor(fieldName string) (FieldInfo, bool) {
	if info, found := softwareFields[fieldName]; found {
		return info, true
	}
	info, found := entityFields[fieldName]
	return info, found
}

// IsListField reports whether a field is declared to hold a list of values.
// Unknown fields are reported as singular.
func IsListField(fieldName string) bool {
	info, found := InfoFor(fieldName)
	return found && info.List
}

// IsEntityField reports whether a software-record field holds nested entities
// that must be dereferenced by node ID during projection.
func IsEntityField(fieldName string) bool {
	info, found := softwareFields[fieldName]
	return found && info.Kind == KindEntity
}

// SoftwareFieldNames returns the names of all declared software-record
// fields. The order is unspecified.
func SoftwareFieldNames() []string {
	names := make([]string, 0, len(softwareFields))
	for name := range softwareFields {
		names = append(names, name)
	}
	return names
}
