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

// Package metadata holds the canonical typed representation of a software
// record and its nested entities. Records are immutable by convention: every
// pipeline stage consumes one and produces a new one.
package metadata

import "encoding/json"

// A SoftwareRecord is the canonical description of one software artifact.
// Field names match the flat (un-expanded) wire form; URL- and date-typed
// fields are carried as strings and validated downstream.
type SoftwareRecord struct {
	// the name of the software
	Name string `json:"name,omitempty"`
	// application categories the software belongs to
	ApplicationCategory []string `json:"applicationCategory,omitempty"`
	// URLs of citable publications describing the software
	Citation []string `json:"citation,omitempty"`
	// URLs of the repositories hosting the source code
	CodeRepository []string `json:"codeRepository,omitempty"`
	// a human-readable statement of access conditions
	ConditionsOfAccess string `json:"conditionsOfAccess,omitempty"`
	// ISO dates (YYYY-MM-DD) of creation and publication
	DateCreated   string `json:"dateCreated,omitempty"`
	DatePublished string `json:"datePublished,omitempty"`
	// a description of the software (at most 2000 characters)
	Description string `json:"description,omitempty"`
	// notable features of the software
	FeatureList []string `json:"featureList,omitempty"`
	// illustrations attached to the record
	Image []Image `json:"image,omitempty"`
	// whether the software is free to use
	IsAccessibleForFree *bool `json:"isAccessibleForFree,omitempty"`
	// URL of a work this software is based on
	IsBasedOn string `json:"isBasedOn,omitempty"`
	// names of tools this software plugs into
	IsPluginModuleOf []string `json:"isPluginModuleOf,omitempty"`
	// URL of the software's license within the SPDX registry
	License string `json:"license,omitempty"`
	// the people and organizations who authored the software
	Author AgentList `json:"author,omitempty"`
	// organizations related to the software, with justifications
	RelatedToOrganization              []string `json:"relatedToOrganization,omitempty"`
	RelatedToOrganizationJustification []string `json:"relatedToOrganizationJustification,omitempty"`
	// operating systems the software runs on
	OperatingSystem []string `json:"operatingSystem,omitempty"`
	// programming languages the software is written in
	ProgrammingLanguage []string `json:"programmingLanguage,omitempty"`
	// software, processor, and memory requirements
	SoftwareRequirements  []string `json:"softwareRequirements,omitempty"`
	ProcessorRequirements []string `json:"processorRequirements,omitempty"`
	MemoryRequirements    *int     `json:"memoryRequirements,omitempty"`
	// whether a GPU is needed to run the software
	RequiresGPU *bool `json:"requiresGPU,omitempty"`
	// datasets supporting the software
	SupportingData []DataFeed `json:"supportingData,omitempty"`
	// the software's home page
	URL string `json:"url,omitempty"`
	// a persistent identifier for the software
	Identifier string `json:"identifier,omitempty"`
	// free-text acknowledgements
	HasAcknowledgements string `json:"hasAcknowledgements,omitempty"`
	// URL of the software's documentation
	HasDocumentation string `json:"hasDocumentation,omitempty"`
	// instructions for running the software
	HasExecutableInstructions string `json:"hasExecutableInstructions,omitempty"`
	// runnable notebooks demonstrating the software
	HasExecutableNotebook []ExecutableNotebook `json:"hasExecutableNotebook,omitempty"`
	// formal inputs and outputs
	HasParameter []FormalParameter `json:"hasParameter,omitempty"`
	// URL of the repository's README
	Readme string `json:"readme,omitempty"`
	// funding sources
	HasFunding []FundingInformation `json:"hasFunding,omitempty"`
	// container images
	HasSoftwareImage []SoftwareImage `json:"hasSoftwareImage,omitempty"`
	// imaging modalities the software applies to
	ImagingModality []string `json:"imagingModality,omitempty"`
	// FAIR assessment level
	FairLevel string `json:"fairLevel,omitempty"`
	// named graph the record belongs to
	Graph string `json:"graph,omitempty"`
	// discipline classification, with justifications
	Discipline              []Discipline `json:"discipline,omitempty"`
	DisciplineJustification []string     `json:"disciplineJustification,omitempty"`
	// repository classification, with justifications
	RepositoryType              RepositoryType `json:"repositoryType,omitempty"`
	RepositoryTypeJustification []string       `json:"repositoryTypeJustification,omitempty"`
}

// Flatten converts a typed record into the flat map form consumed by the
// merger and the validator. Unset fields are omitted.
func (r *SoftwareRecord) Flatten() (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

// FromMap converts a flat record back into its typed form. Author entries
// are decoded as persons or organizations based on their field sets.
func FromMap(flat map[string]any) (*SoftwareRecord, error) {
	data, err := json.Marshal(flat)
	if err != nil {
		return nil, err
	}
	var record SoftwareRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
