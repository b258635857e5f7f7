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

package schema

// Vocabulary namespaces used by the linked-data representation of software
// records. Every predicate the codec understands is a constant below, grouped
// by namespace.
const (
	SchemaOrg = "http://schema.org/"
	SD        = "https://w3id.org/okn/o/sd#"
	Imag      = "https://imaging-plaza.epfl.ch/ontology#"
	MD4I      = "http://w3id.org/nfdi4ing/metadata4ing#"
)

// Entity type IRIs. The SoftwareSourceCode type identifies the anchor node of
// a merged graph; the others discriminate nested entities during projection.
const (
	TypeSoftwareSourceCode = SchemaOrg + "SoftwareSourceCode"
	TypePerson             = SchemaOrg + "Person"
	TypeOrganization       = SchemaOrg + "Organization"
	TypeDataFeed           = SchemaOrg + "DataFeed"
	TypeFundingInformation = SD + "FundingInformation"
	TypeFormalParameter    = SD + "FormalParameter"
	TypeSoftwareImage      = SD + "SoftwareImage"
	TypeExecutableNotebook = Imag + "ExecutableNotebook"
)

// schema.org predicates
const (
	PredName                 = SchemaOrg + "name"
	PredDescription          = SchemaOrg + "description"
	PredURL                  = SchemaOrg + "url"
	PredIdentifier           = SchemaOrg + "identifier"
	PredDateCreated          = SchemaOrg + "dateCreated"
	PredDatePublished        = SchemaOrg + "datePublished"
	PredLicense              = SchemaOrg + "license"
	PredAuthor               = SchemaOrg + "author"
	PredCodeRepository       = SchemaOrg + "codeRepository"
	PredProgrammingLanguage  = SchemaOrg + "programmingLanguage"
	PredApplicationCategory  = SchemaOrg + "applicationCategory"
	PredFeatureList          = SchemaOrg + "featureList"
	PredImage                = SchemaOrg + "image"
	PredIsAccessibleForFree  = SchemaOrg + "isAccessibleForFree"
	PredIsBasedOn            = SchemaOrg + "isBasedOn"
	PredOperatingSystem      = SchemaOrg + "operatingSystem"
	PredSoftwareRequirements = SchemaOrg + "softwareRequirements"
	PredProcessorReqs        = SchemaOrg + "processorRequirements"
	PredMemoryRequirements   = SchemaOrg + "memoryRequirements"
	PredSupportingData       = SchemaOrg + "supportingData"
	PredConditionsOfAccess   = SchemaOrg + "conditionsOfAccess"
	PredCitation             = SchemaOrg + "citation"
	PredAffiliation          = SchemaOrg + "affiliation"
	PredLegalName            = SchemaOrg + "legalName"
	PredEncodingFormat       = SchemaOrg + "encodingFormat"
	PredDefaultValue         = SchemaOrg + "defaultValue"
	PredValueRequired        = SchemaOrg + "valueRequired"
	PredMeasurementTechnique = SchemaOrg + "measurementTechnique"
	PredVariableMeasured     = SchemaOrg + "variableMeasured"
	PredContentURL           = SchemaOrg + "contentUrl"
	PredSoftwareVersion      = SchemaOrg + "softwareVersion"
	PredKeywords             = SchemaOrg + "keywords"
)

// software-description ontology predicates
const (
	PredHasDocumentation    = SD + "hasDocumentation"
	PredHasExecInstructions = SD + "hasExecutableInstructions"
	PredHasAcknowledgements = SD + "hasAcknowledgements"
	PredHasParameter        = SD + "hasParameter"
	PredReadme              = SD + "readme"
	PredHasFunding          = SD + "hasFunding"
	PredHasSoftwareImage    = SD + "hasSoftwareImage"
	PredHasFormat           = SD + "hasFormat"
	PredHasDimensionality   = SD + "hasDimensionality"
	PredAvailableInRegistry = SD + "availableInRegistry"
	PredFundingGrant        = SD + "fundingGrant"
	PredFundingSource       = SD + "fundingSource"
)

// imaging-plaza ontology predicates
const (
	PredImagingModality       = Imag + "imagingModality"
	PredIsPluginModuleOf      = Imag + "isPluginModuleOf"
	PredRelatedToOrganization = Imag + "relatedToOrganization"
	PredRelatedToOrgJustif    = Imag + "relatedToOrganizationJustification"
	PredRequiresGPU           = Imag + "requiresGPU"
	PredHasExecNotebook       = Imag + "hasExecutableNotebook"
	PredFairLevel             = Imag + "fairLevel"
	PredGraph                 = Imag + "graph"
	PredDiscipline            = Imag + "discipline"
	PredDisciplineJustif      = Imag + "disciplineJustification"
	PredRepositoryType        = Imag + "repositoryType"
	PredRepositoryTypeJustif  = Imag + "repositoryTypeJustification"
)

// metadata4ing predicates
const (
	PredOrcidID  = MD4I + "orcidId"
	PredHasRorID = MD4I + "hasRorId"
)
