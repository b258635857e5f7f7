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

// Package export renders a sanitized software record as a Frictionless data
// package, for consumers that speak that format rather than JSON-LD.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/frictionlessdata/datapackage-go/datapackage"
	"github.com/frictionlessdata/datapackage-go/validator"

	"github.com/imaging-plaza/fairifier/metadata"
)

// indicates that a record has nothing a data package could carry as a resource
type NoResourcesError struct {
	Name string
}

func (e NoResourcesError) Error() string {
	return fmt.Sprintf("The record '%s' has no code repositories to export", e.Name)
}

var slugRe = regexp.MustCompile(`[^a-z0-9._-]+`)

// slug turns a record name into a valid data-package name.
func slug(name string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "software-record"
	}
	return s
}

// Package builds a Frictionless data package describing the given record. The
// record's code repositories become the package's resources; authors become
// contributors.
func Package(record *metadata.SoftwareRecord) (*datapackage.Package, error) {
	if len(record.CodeRepository) == 0 {
		return nil, NoResourcesError{Name: record.Name}
	}

	resources := make([]any, 0, len(record.CodeRepository))
	for i, repository := range record.CodeRepository {
		resources = append(resources, map[string]any{
			"name":   fmt.Sprintf("code-repository-%d", i+1),
			"path":   repository,
			"format": "html",
		})
	}

	contributors := make([]any, 0, len(record.Author))
	for _, author := range record.Author {
		switch agent := author.(type) {
		case metadata.Person:
			contributor := map[string]any{
				"title": agent.Name,
				"role":  "author",
			}
			if len(agent.Affiliation) > 0 {
				contributor["organization"] = strings.Join(agent.Affiliation, ", ")
			}
			contributors = append(contributors, contributor)
		case metadata.Organization:
			contributors = append(contributors, map[string]any{
				"title": agent.LegalName,
				"role":  "author",
			})
		}
	}

	descriptor := map[string]any{
		"name":      slug(record.Name),
		"title":     record.Name,
		"resources": resources,
		"created":   time.Now().Format(time.RFC3339),
		"profile":   "data-package",
	}
	if record.Description != "" {
		descriptor["description"] = record.Description
	}
	if record.URL != "" {
		descriptor["homepage"] = record.URL
	}
	if record.License != "" {
		descriptor["licenses"] = []any{
			map[string]any{"name": "see-path", "path": record.License},
		}
	}
	if len(contributors) > 0 {
		descriptor["contributors"] = contributors
	}
	keywords := make([]any, 0)
	for _, category := range record.ApplicationCategory {
		keywords = append(keywords, category)
	}
	for _, modality := range record.ImagingModality {
		keywords = append(keywords, modality)
	}
	if len(keywords) > 0 {
		descriptor["keywords"] = keywords
	}

	return datapackage.New(descriptor, ".", validator.InMemoryLoader())
}
