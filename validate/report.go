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

package validate

import "encoding/json"

// ReasonKind discriminates the ways a field can be invalid. The sanitizer
// branches exhaustively on it: whole-field violations remove the field,
// partial-list violations remove only the offending entries, and
// nested-entity violations repair individual sub-records.
type ReasonKind int

const (
	WholeFieldInvalid ReasonKind = iota
	PartialListInvalid
	NestedEntityInvalid
)

// A Reason records why a field was flagged. Exactly one of the payload
// members is meaningful, selected by Kind.
type Reason struct {
	Kind ReasonKind
	// a human-readable message (WholeFieldInvalid)
	Message string
	// the offending list entries (PartialListInvalid)
	BadItems []string
	// descriptions of invalid sub-record parts (NestedEntityInvalid)
	Subfields []string
}

func wholeField(message string) Reason {
	return Reason{Kind: WholeFieldInvalid, Message: message}
}

func partialList(badItems []string) Reason {
	return Reason{Kind: PartialListInvalid, BadItems: badItems}
}

// On the report surface a reason appears either as a message string (whole-
// field removal) or as a list of offending items (partial removal), which is
// what callers key their handling on.
func (r Reason) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case PartialListInvalid:
		return json.Marshal(r.BadItems)
	case NestedEntityInvalid:
		return json.Marshal(r.Subfields)
	default:
		return json.Marshal(r.Message)
	}
}

// UnmarshalJSON reverses the surfaced form. The two list-shaped kinds are
// indistinguishable on the wire, so lists decode as PartialListInvalid; the
// sanitizer only runs on reports it built itself, so the distinction matters
// for display, not repair.
func (r *Reason) UnmarshalJSON(data []byte) error {
	var message string
	if err := json.Unmarshal(data, &message); err == nil {
		*r = wholeField(message)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*r = partialList(items)
	return nil
}

// A Report is the outcome of one validation run: blocking issues, advisory
// warnings, and the per-field reasons that drive sanitization. A report is
// scoped to a single run and discarded after sanitization.
type Report struct {
	// blocking problems (structural or format violations)
	Issues []string
	// non-blocking observations (unreachable URLs)
	Warnings []string
	// field name -> why it was flagged
	InvalidFields map[string]Reason
}

func newReport() *Report {
	return &Report{
		Issues:        []string{},
		Warnings:      []string{},
		InvalidFields: map[string]Reason{},
	}
}

// Valid reports whether the record passed every blocking check.
func (r *Report) Valid() bool {
	return len(r.Issues) == 0
}

// Status returns the surfaced status string.
func (r *Report) Status() string {
	if r.Valid() {
		return "valid"
	}
	return "invalid"
}

// the surfaced form of a report
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status        string            `json:"status"`
		Issues        []string          `json:"issues"`
		Warnings      []string          `json:"warnings"`
		InvalidFields map[string]Reason `json:"invalidFields"`
	}{
		Status:        r.Status(),
		Issues:        r.Issues,
		Warnings:      r.Warnings,
		InvalidFields: r.InvalidFields,
	})
}

func (r *Report) addIssue(message string) {
	r.Issues = append(r.Issues, message)
}

func (r *Report) addWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// flagField records a whole-field or partial-list reason for a field.
func (r *Report) flagField(field string, reason Reason) {
	r.InvalidFields[field] = reason
}

// flagSubfield appends one sub-record problem to a field's nested-entity
// reason, creating it if needed. A field already flagged whole-field keeps
// its stronger reason.
func (r *Report) flagSubfield(field, description string) {
	existing, found := r.InvalidFields[field]
	if found && existing.Kind != NestedEntityInvalid {
		return
	}
	existing.Kind = NestedEntityInvalid
	existing.Subfields = append(existing.Subfields, description)
	r.InvalidFields[field] = existing
}
