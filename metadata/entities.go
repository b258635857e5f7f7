package metadata

import (
	"encoding/json"
	"fmt"
)

// An Agent is a person or an organization appearing in a record's author
// list. The two concrete types are distinguished on the wire by their field
// sets (a Person has a name, an Organization has a legal name).
type Agent interface {
	// returns the entity type discriminator ("Person" or "Organization")
	EntityType() string
}

// A Person describes an individual contributor.
type Person struct {
	// the person's full name
	Name string `json:"name,omitempty"`
	// URL of the person's ORCID profile (optional)
	OrcidId string `json:"orcidId,omitempty"`
	// names of organizations the person is affiliated with (optional)
	Affiliation []string `json:"affiliation,omitempty"`
}

func (p Person) EntityType() string { return "Person" }

// An Organization describes an institutional contributor or funding source.
type Organization struct {
	// the organization's full legal name
	LegalName string `json:"legalName,omitempty"`
	// URL of the organization's ROR registry entry (optional)
	HasRorId string `json:"hasRorId,omitempty"`
}

func (o Organization) EntityType() string { return "Organization" }

// AgentList is an ordered list of authors. It exists so the Person /
// Organization union can be decoded from JSON: entries carrying a legalName
// decode as organizations, everything else as a person.
type AgentList []Agent

func (a *AgentList) UnmarshalJSON(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	list := make(AgentList, 0, len(entries))
	for _, entry := range entries {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(entry, &probe); err != nil {
			return fmt.Errorf("metadata: author entry is not an object: %w", err)
		}
		if _, isOrg := probe["legalName"]; isOrg {
			var org Organization
			if err := json.Unmarshal(entry, &org); err != nil {
				return err
			}
			list = append(list, org)
		} else {
			var person Person
			if err := json.Unmarshal(entry, &person); err != nil {
				return err
			}
			list = append(list, person)
		}
	}
	*a = list
	return nil
}

// FundingInformation describes one funding source for the software.
type FundingInformation struct {
	// an identifier for the grant or award
	Identifier string `json:"identifier,omitempty"`
	// the name or number of the grant
	FundingGrant string `json:"fundingGrant,omitempty"`
	// the organization providing the funding
	FundingSource *Organization `json:"fundingSource,omitempty"`
}

// A FormalParameter describes one formal input or output of the software.
type FormalParameter struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	// URL identifying the encoding format (optional)
	EncodingFormat string `json:"encodingFormat,omitempty"`
	// dimensionality of the parameter (positive)
	HasDimensionality *int   `json:"hasDimensionality,omitempty"`
	HasFormat         string `json:"hasFormat,omitempty"`
	DefaultValue      string `json:"defaultValue,omitempty"`
	ValueRequired     *bool  `json:"valueRequired,omitempty"`
}

// An ExecutableNotebook points at a runnable notebook demonstrating the
// software.
type ExecutableNotebook struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// A SoftwareImage describes a container image in which the software is
// distributed.
type SoftwareImage struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	// version tag of the image, in major.minor.patch form
	SoftwareVersion string `json:"softwareVersion,omitempty"`
	// URL of the image within a container registry
	AvailableInRegistry string `json:"availableInRegistry,omitempty"`
}

// A DataFeed describes a dataset supporting the software.
type DataFeed struct {
	Name                 string `json:"name,omitempty"`
	Description          string `json:"description,omitempty"`
	ContentURL           string `json:"contentUrl,omitempty"`
	MeasurementTechnique string `json:"measurementTechnique,omitempty"`
	VariableMeasured     string `json:"variableMeasured,omitempty"`
}

// An Image is an illustration attached to a record.
type Image struct {
	ContentURL string       `json:"contentUrl,omitempty"`
	Keywords   ImageKeyword `json:"keywords,omitempty"`
}
