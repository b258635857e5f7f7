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

package jsonld

import (
	"fmt"

	"github.com/imaging-plaza/fairifier/metadata"
	"github.com/imaging-plaza/fairifier/schema"
)

// An entityConverter turns one graph node into its typed sub-record. The
// index maps node IRIs to nodes of the same graph, for dereferencing.
type entityConverter func(node GraphNode, index map[string]GraphNode) any

// entityConverters is the closed dispatch table from type IRI to converter.
// Unrecognized types project to nil instead of failing. The table is
// populated in init() because some converters recurse through it for their
// nested entities; it is checked for completeness there too, so a type added
// to the registry can't silently fall through.
var entityConverters map[string]entityConverter

func init() {
	entityConverters = map[string]entityConverter{
		schema.TypePerson:             convertPerson,
		schema.TypeOrganization:       convertOrganization,
		schema.TypeFundingInformation: convertFunding,
		schema.TypeFormalParameter:    convertFormalParameter,
		schema.TypeExecutableNotebook: convertNotebook,
		schema.TypeSoftwareImage:      convertSoftwareImage,
		schema.TypeDataFeed:           convertDataFeed,
	}

	// every nested entity type the registry knows must have a converter
	required := []string{
		schema.TypePerson, schema.TypeOrganization, schema.TypeFundingInformation,
		schema.TypeFormalParameter, schema.TypeExecutableNotebook,
		schema.TypeSoftwareImage, schema.TypeDataFeed,
	}
	for _, typeIRI := range required {
		if _, found := entityConverters[typeIRI]; !found {
			panic(fmt.Sprintf("jsonld: no converter registered for %s", typeIRI))
		}
	}
}

// Project locates the first software-record node in a linked graph and
// converts it (and all nested entities reachable from it) into a typed
// record. It returns nil if the graph has no node of the software-record
// type; missing optional fields never cause an error.
func Project(graph LinkedGraph) (*metadata.SoftwareRecord, error) {
	anchor := graph.FirstOfType(schema.TypeSoftwareSourceCode)
	if anchor == nil {
		return nil, nil
	}
	index := graph.ByID()

	data := make(map[string]any)
	for predicate, value := range anchor {
		if predicate == "@id" || predicate == "@type" {
			continue
		}
		field, found := schema.FieldForPredicate(predicate)
		if !found {
			continue // predicate outside the vocabulary
		}

		switch {
		case field == "image":
			// raw URLs become illustrative images
			var images []metadata.Image
			for _, entry := range asList(value) {
				if img := convertImageEntry(entry, index); img != nil {
					images = append(images, *img)
				}
			}
			if images != nil {
				data[field] = images
			}
		case schema.IsEntityField(field):
			var entities []any
			for _, entry := range asList(value) {
				if entity := resolveEntity(field, entry, index); entity != nil {
					entities = append(entities, entity)
				}
			}
			if entities != nil {
				data[field] = entities
			}
		case schema.IsListField(field):
			var items []any
			for _, entry := range asList(value) {
				items = append(items, unboxValue(entry))
			}
			data[field] = items
		default:
			data[field] = unboxValue(value)
		}
	}
	return metadata.FromMap(data)
}

// resolveEntity turns one boxed entry of an entity-typed field into its
// typed sub-record. The entry is either an {"@id": ...} reference into the
// graph (the extractor's form) or an inline expanded node (the expansion's
// form for nested records); references to nodes absent from the graph are
// dropped.
func resolveEntity(field string, entry any, index map[string]GraphNode) any {
	if ref, ok := unboxValue(entry).(string); ok {
		node, found := index[ref]
		if !found {
			return nil
		}
		return convertEntity(node, index)
	}
	if inline, ok := entry.(map[string]any); ok {
		return convertInline(field, GraphNode(inline), index)
	}
	return nil
}

// convertEntity dispatches a typed graph node through the converter table.
func convertEntity(node GraphNode, index map[string]GraphNode) any {
	for _, typeIRI := range node.Types() {
		if convert, found := entityConverters[typeIRI]; found {
			return convert(node, index)
		}
	}
	return nil
}

// convertInline handles nested nodes that carry no @type, picking the
// converter from the field they occur under. Authors are disambiguated by
// the presence of a legal name.
func convertInline(field string, node GraphNode, index map[string]GraphNode) any {
	switch field {
	case "author":
		if _, isOrg := node[schema.PredLegalName]; isOrg {
			return convertOrganization(node, index)
		}
		return convertPerson(node, index)
	case "supportingData":
		return convertDataFeed(node, index)
	case "hasExecutableNotebook":
		return convertNotebook(node, index)
	case "hasParameter":
		return convertFormalParameter(node, index)
	case "hasFunding":
		return convertFunding(node, index)
	case "hasSoftwareImage":
		return convertSoftwareImage(node, index)
	case "fundingSource":
		return convertOrganization(node, index)
	}
	return nil
}

func convertImageEntry(entry any, index map[string]GraphNode) *metadata.Image {
	if url, ok := unboxValue(entry).(string); ok && url != "" {
		return &metadata.Image{ContentURL: url, Keywords: metadata.KeywordIllustrativeImage}
	}
	if inline, ok := entry.(map[string]any); ok {
		node := GraphNode(inline)
		img := metadata.Image{
			ContentURL: stringAt(node, schema.PredContentURL),
			Keywords:   metadata.ImageKeyword(stringAt(node, schema.PredKeywords)),
		}
		if img.Keywords == "" {
			img.Keywords = metadata.KeywordIllustrativeImage
		}
		if img.ContentURL == "" {
			return nil
		}
		return &img
	}
	return nil
}

//---------------------
// entity converters
//---------------------

func convertPerson(node GraphNode, _ map[string]GraphNode) any {
	return metadata.Person{
		Name:        stringAt(node, schema.PredName),
		OrcidId:     stringAt(node, schema.PredOrcidID),
		Affiliation: stringsAt(node, schema.PredAffiliation),
	}
}

func convertOrganization(node GraphNode, _ map[string]GraphNode) any {
	return metadata.Organization{
		LegalName: stringAt(node, schema.PredLegalName),
		HasRorId:  stringAt(node, schema.PredHasRorID),
	}
}

func convertFunding(node GraphNode, index map[string]GraphNode) any {
	funding := metadata.FundingInformation{
		Identifier:   stringAt(node, schema.PredIdentifier),
		FundingGrant: stringAt(node, schema.PredFundingGrant),
	}
	// the funding source is itself a node, referenced or inline
	if value, found := node[schema.PredFundingSource]; found {
		var source any
		if ref, ok := unboxValue(value).(string); ok {
			if sourceNode, found := index[ref]; found {
				source = convertEntity(sourceNode, index)
			}
		} else if entries := asList(value); len(entries) > 0 {
			if inline, ok := entries[0].(map[string]any); ok {
				source = convertInline("fundingSource", GraphNode(inline), index)
			}
		}
		if org, ok := source.(metadata.Organization); ok {
			funding.FundingSource = &org
		}
	}
	return funding
}

func convertFormalParameter(node GraphNode, _ map[string]GraphNode) any {
	return metadata.FormalParameter{
		Name:              stringAt(node, schema.PredName),
		Description:       stringAt(node, schema.PredDescription),
		EncodingFormat:    stringAt(node, schema.PredEncodingFormat),
		HasDimensionality: intAt(node, schema.PredHasDimensionality),
		HasFormat:         stringAt(node, schema.PredHasFormat),
		DefaultValue:      stringAt(node, schema.PredDefaultValue),
		ValueRequired:     boolAt(node, schema.PredValueRequired),
	}
}

func convertNotebook(node GraphNode, _ map[string]GraphNode) any {
	return metadata.ExecutableNotebook{
		Name:        stringAt(node, schema.PredName),
		Description: stringAt(node, schema.PredDescription),
		URL:         stringAt(node, schema.PredURL),
	}
}

func convertSoftwareImage(node GraphNode, _ map[string]GraphNode) any {
	return metadata.SoftwareImage{
		Name:                stringAt(node, schema.PredName),
		Description:         stringAt(node, schema.PredDescription),
		SoftwareVersion:     stringAt(node, schema.PredSoftwareVersion),
		AvailableInRegistry: stringAt(node, schema.PredAvailableInRegistry),
	}
}

func convertDataFeed(node GraphNode, _ map[string]GraphNode) any {
	return metadata.DataFeed{
		Name:                 stringAt(node, schema.PredName),
		Description:          stringAt(node, schema.PredDescription),
		ContentURL:           stringAt(node, schema.PredContentURL),
		MeasurementTechnique: stringAt(node, schema.PredMeasurementTechnique),
		VariableMeasured:     stringAt(node, schema.PredVariableMeasured),
	}
}

//---------------------
// unboxing helpers
//---------------------

func stringAt(node GraphNode, predicate string) string {
	s, _ := unboxValue(node[predicate]).(string)
	return s
}

func stringsAt(node GraphNode, predicate string) []string {
	value, found := node[predicate]
	if !found {
		return nil
	}
	var items []string
	for _, entry := range asList(value) {
		if s, ok := unboxValue(entry).(string); ok {
			items = append(items, s)
		}
	}
	return items
}

func intAt(node GraphNode, predicate string) *int {
	value, found := node[predicate]
	if !found {
		return nil
	}
	switch v := unboxValue(value).(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	}
	return nil
}

func boolAt(node GraphNode, predicate string) *bool {
	value, found := node[predicate]
	if !found {
		return nil
	}
	if b, ok := unboxValue(value).(bool); ok {
		return &b
	}
	return nil
}
