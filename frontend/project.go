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

// Package frontend projects a typed software record into the flat dictionary
// shape consumed by the submission form. Keys are renamed to the form
// schema's prefixed identifiers through static per-type tables, and domain
// value types degrade to transport-safe primitives.
package frontend

import (
	"reflect"
	"strings"
	"time"

	"github.com/imaging-plaza/fairifier/metadata"
	"github.com/imaging-plaza/fairifier/schema"
)

// renameTables maps each entity type to its field -> form-key table. Types
// without a table fall back to emitting their fields under unchanged names.
// The tables must be edited together with the form schema: a field missing
// here is silently dropped from the projection.
var renameTables = map[string]map[string]string{
	"Person": {
		"name":        "schema:name",
		"orcidId":     "md4i:orcidId",
		"affiliation": "schema:affiliation",
	},
	"Organization": {
		"legalName": "schema:legalName",
		"hasRorId":  "md4i:hasRorId",
	},
	"FundingInformation": {
		"identifier":    "schema:identifier",
		"fundingGrant":  "sd:fundingGrant",
		"fundingSource": "sd:fundingSource",
	},
	"FormalParameter": {
		"name":              "schema:name",
		"description":       "schema:description",
		"encodingFormat":    "schema:encodingFormat",
		"hasDimensionality": "sd:hasDimensionality",
		"hasFormat":         "sd:hasFormat",
		"defaultValue":      "schema:defaultValue",
		"valueRequired":     "schema:valueRequired",
	},
	"ExecutableNotebook": {
		"name":        "schema:name",
		"description": "schema:description",
		"url":         "schema:url",
	},
	"SoftwareImage": {
		"name":                "schema:name",
		"description":         "schema:description",
		"softwareVersion":     "schema:softwareVersion",
		"availableInRegistry": "sd:availableInRegistry",
	},
	"DataFeed": {
		"name":                 "schema:name",
		"description":          "schema:description",
		"contentUrl":           "schema:contentUrl",
		"measurementTechnique": "schema:measurementTechnique",
		"variableMeasured":     "schema:variableMeasured",
	},
	"Image": {
		"contentUrl": "schema:contentUrl",
		"keywords":   "schema:keywords",
	},
	"SoftwareRecord": {
		"name":                               "schema:name",
		"applicationCategory":                "schema:applicationCategory",
		"citation":                           "schema:citation",
		"codeRepository":                     "schema:codeRepository",
		"conditionsOfAccess":                 "schema:conditionsOfAccess",
		"dateCreated":                        "schema:dateCreated",
		"datePublished":                      "schema:datePublished",
		"description":                        "schema:description",
		"featureList":                        "schema:featureList",
		"image":                              "schema:image",
		"isAccessibleForFree":                "schema:isAccessibleForFree",
		"isBasedOn":                          "schema:isBasedOn",
		"isPluginModuleOf":                   "imag:isPluginModuleOf",
		"license":                            "schema:license",
		"author":                             "schema:author",
		"relatedToOrganization":              "imag:relatedToOrganization",
		"relatedToOrganizationJustification": "imag:relatedToOrganizationJustification",
		"operatingSystem":                    "schema:operatingSystem",
		"programmingLanguage":                "schema:programmingLanguage",
		"softwareRequirements":               "schema:softwareRequirements",
		"processorRequirements":              "schema:processorRequirements",
		"memoryRequirements":                 "schema:memoryRequirements",
		"requiresGPU":                        "imag:requiresGPU",
		"supportingData":                     "schema:supportingData",
		"url":                                "schema:url",
		"identifier":                         "schema:identifier",
		"hasAcknowledgements":                "sd:hasAcknowledgements",
		"hasDocumentation":                   "sd:hasDocumentation",
		"hasExecutableInstructions":          "sd:hasExecutableInstructions",
		"hasExecutableNotebook":              "imag:hasExecutableNotebook",
		"hasParameter":                       "sd:hasParameter",
		"readme":                             "sd:readme",
		"hasFunding":                         "sd:hasFunding",
		"hasSoftwareImage":                   "sd:hasSoftwareImage",
		"imagingModality":                    "imag:imagingModality",
		"fairLevel":                          "imag:fairLevel",
		"graph":                              "imag:graph",
		"discipline":                         "imag:discipline",
		"disciplineJustification":            "imag:disciplineJustification",
		"repositoryType":                     "imag:repositoryType",
		"repositoryTypeJustification":        "imag:repositoryTypeJustification",
	},
}

// Project converts a typed record into the form dictionary. Nested entities
// recurse through the same conversion on their live typed values, so their
// keys are renamed too; unset fields are excluded.
func Project(record *metadata.SoftwareRecord) map[string]any {
	if record == nil {
		return map[string]any{}
	}
	projected, _ := projectValue(reflect.ValueOf(record).Elem()).(map[string]any)
	return projected
}

func projectValue(value reflect.Value) any {
	switch value.Kind() {
	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return nil
		}
		return projectValue(value.Elem())
	case reflect.Slice:
		projected := make([]any, value.Len())
		for i := range value.Len() {
			projected[i] = projectValue(value.Index(i))
		}
		return projected
	case reflect.Struct:
		return projectStruct(value)
	case reflect.String:
		// named string types (enums) degrade to their underlying string
		return value.String()
	case reflect.Bool:
		return value.Bool()
	case reflect.Int:
		return int(value.Int())
	default:
		return value.Interface()
	}
}

func projectStruct(value reflect.Value) map[string]any {
	structType := value.Type()
	table, mapped := renameTables[structType.Name()]

	projected := map[string]any{}
	for i := range structType.NumField() {
		field := structType.Field(i)
		name := jsonName(field)
		if name == "" || isUnset(value.Field(i)) {
			continue
		}

		converted := projectValue(value.Field(i))
		if info, known := schema.InfoFor(name); known && info.Kind == schema.KindDate {
			if date, ok := converted.(string); ok {
				converted = midnightTimestamp(date)
			}
		}

		if !mapped {
			projected[name] = converted
			continue
		}
		if key, declared := table[name]; declared {
			projected[key] = converted
		}
	}
	return projected
}

// midnightTimestamp turns a YYYY-MM-DD date into a full UTC timestamp at
// midnight, which loosely-typed date constructors on the consuming side
// accept where a bare date is ambiguous. Malformed dates pass through.
func midnightTimestamp(date string) string {
	parsed, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return date
	}
	return parsed.Format(time.RFC3339)
}

func jsonName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// isUnset mirrors omitempty: zero scalars, empty strings, nil or empty
// collections, and nil pointers are excluded from the projection.
func isUnset(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.Pointer, reflect.Interface:
		return value.IsNil()
	case reflect.Slice, reflect.Map:
		return value.Len() == 0
	case reflect.String:
		return value.Len() == 0
	}
	return false
}
