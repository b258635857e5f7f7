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

// Package validate checks a flat software record against required-field,
// format, and reachability rules, and deterministically repairs what it can.
// Validation never fails a record: blocking issues are recorded and then
// recovered by sanitization, which accepts data loss on the offending fields
// rather than rejecting the whole record.
package validate

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// fields a record must carry; an empty string, list or object counts as
// missing
var requiredFields = []string{
	"name", "description", "author", "codeRepository", "citation",
	"dateCreated", "datePublished", "license", "url", "identifier",
	"hasSoftwareImage", "hasParameter", "hasFunding",
}

// singular fields holding one URL
var singularURLFields = []string{"url", "readme", "hasDocumentation"}

// fields holding a list of URLs
var urlListFields = []string{"codeRepository", "citation", "image"}

// the SPDX path segment a license URL must contain
const spdxLicensePath = "spdx.org/licenses/"

var (
	dateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	versionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

// A Validator runs the validation phase over flat records. The zero value is
// not usable; construct one with New.
type Validator struct {
	// HTTP client used for reachability probes
	client *http.Client
	// per-probe timeout
	probeTimeout time.Duration
	// number of concurrent probe workers
	probeWorkers int
	// disables reachability probing entirely
	skipProbes bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithProbeTimeout sets the per-probe timeout (default 5s).
func WithProbeTimeout(timeout time.Duration) Option {
	return func(v *Validator) { v.probeTimeout = timeout }
}

// WithProbeWorkers sets the bounded worker count for reachability probing
// (default 8).
func WithProbeWorkers(workers int) Option {
	return func(v *Validator) { v.probeWorkers = workers }
}

// WithoutProbes disables reachability probing. Structural and format checks
// are unaffected.
func WithoutProbes() Option {
	return func(v *Validator) { v.skipProbes = true }
}

// WithHTTPClient overrides the probe client's transport (used in tests).
func WithHTTPClient(client *http.Client) Option {
	return func(v *Validator) { v.client = client }
}

// New creates a validator.
func New(options ...Option) *Validator {
	v := &Validator{
		probeTimeout: 5 * time.Second,
		probeWorkers: 8,
	}
	for _, option := range options {
		option(v)
	}
	if v.client == nil {
		v.client = &http.Client{Timeout: v.probeTimeout}
	}
	return v
}

// Validate runs all checks over a flat record, returning a fresh report. The
// record is not mutated. Reachability problems surface as warnings only and
// can never block the record.
func (v *Validator) Validate(record map[string]any) *Report {
	slog.Debug("Running metadata validation checks...")
	report := newReport()

	v.checkRequiredFields(record, report)
	v.checkFormats(record, report)
	v.checkAuthors(record, report)
	v.checkSoftwareImages(record, report)
	if !v.skipProbes {
		v.checkReachability(record, report)
	}

	if !report.Valid() {
		slog.Warn(fmt.Sprintf("%d validation issue(s) found", len(report.Issues)))
	}
	return report
}

func (v *Validator) checkRequiredFields(record map[string]any, report *Report) {
	for _, field := range requiredFields {
		if isEmptyValue(record[field]) {
			report.addIssue(fmt.Sprintf("Missing required field: %s", field))
			report.flagField(field, wholeField("Missing required field"))
		}
	}
}

func (v *Validator) checkFormats(record map[string]any, report *Report) {
	// license must point into the SPDX registry
	if value, present := record["license"]; present && !isEmptyValue(value) {
		license, ok := value.(string)
		if !ok || !containsSPDXPath(license) {
			msg := fmt.Sprintf("License is not a valid SPDX URL: %v", value)
			report.addIssue(msg)
			report.flagField("license", wholeField(msg))
		}
	}

	// dates must be YYYY-MM-DD
	for _, field := range []string{"dateCreated", "datePublished"} {
		if value, present := record[field]; present && !isEmptyValue(value) {
			date, ok := value.(string)
			if !ok || !dateRe.MatchString(date) {
				msg := fmt.Sprintf("Invalid date format in %s: %v", field, value)
				report.addIssue(msg)
				report.flagField(field, wholeField(msg))
			}
		}
	}

	// singular URL fields
	for _, field := range singularURLFields {
		if value, present := record[field]; present && !isEmptyValue(value) {
			u, ok := value.(string)
			if !ok || !isValidURL(u) {
				msg := fmt.Sprintf("Invalid URL in %s: %v", field, value)
				report.addIssue(msg)
				report.flagField(field, wholeField(msg))
			}
		}
	}

	// URL list fields: a non-list is a type violation on the whole field,
	// while bad entries inside a list are recorded individually
	for _, field := range urlListFields {
		value, present := record[field]
		if !present || isEmptyValue(value) {
			continue
		}
		list, ok := value.([]any)
		if !ok {
			msg := fmt.Sprintf("Expected list in %s, got %T", field, value)
			report.addIssue(msg)
			report.flagField(field, wholeField(msg))
			continue
		}
		var badItems []string
		for _, entry := range list {
			if u, ok := entry.(string); !ok || !isValidURL(u) {
				badItems = append(badItems, fmt.Sprintf("%v", entry))
			}
		}
		if badItems != nil {
			report.addIssue(fmt.Sprintf("%d invalid URLs in %s: %v", len(badItems), field, badItems))
			report.flagField(field, partialList(badItems))
		}
	}
}

func (v *Validator) checkAuthors(record map[string]any, report *Report) {
	value, present := record["author"]
	if !present {
		return
	}
	authors, ok := value.([]any)
	if !ok {
		msg := "`author` must be a list"
		report.addIssue(msg)
		report.flagField("author", wholeField(msg))
		return
	}
	for _, entry := range authors {
		author, ok := entry.(map[string]any)
		if !ok {
			report.addIssue(fmt.Sprintf("Invalid author entry (not an object): %v", entry))
			continue
		}
		if name, _ := author["name"].(string); name == "" {
			report.addIssue("Missing `name` in author object")
			report.flagSubfield("author", "Missing name")
		}
		if raw, present := author["orcidId"]; present {
			if orcid, ok := raw.(string); !ok || !isValidURL(orcid) {
				report.addIssue(fmt.Sprintf("Invalid ORCID ID: %v", raw))
				report.flagSubfield("author", "Invalid ORCID ID")
			}
		}
	}
}

func (v *Validator) checkSoftwareImages(record map[string]any, report *Report) {
	value, present := record["hasSoftwareImage"]
	if !present {
		return
	}
	images, ok := value.([]any)
	if !ok {
		msg := "`hasSoftwareImage` must be a list"
		report.addIssue(msg)
		report.flagField("hasSoftwareImage", wholeField(msg))
		return
	}
	for _, entry := range images {
		image, ok := entry.(map[string]any)
		if !ok {
			report.addIssue(fmt.Sprintf("Invalid software image entry (not an object): %v", entry))
			continue
		}
		if raw, present := image["softwareVersion"]; present {
			if version, ok := raw.(string); !ok || !versionRe.MatchString(version) {
				report.addIssue(fmt.Sprintf("Invalid softwareVersion: %v", raw))
				report.flagSubfield("hasSoftwareImage", "Invalid version")
			}
		}
		if raw, present := image["availableInRegistry"]; present {
			if registry, ok := raw.(string); !ok || !isValidURL(registry) {
				report.addIssue(fmt.Sprintf("Invalid registry URL: %v", raw))
				report.flagSubfield("hasSoftwareImage", "Invalid URL")
			}
		}
	}
}

//---------------------
// utility predicates
//---------------------

// treats nil, "", empty lists and empty objects as missing
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

func isValidURL(candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func containsSPDXPath(license string) bool {
	return strings.Contains(license, spdxLicensePath)
}
