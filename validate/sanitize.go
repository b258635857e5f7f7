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

import (
	"fmt"
	"log/slog"
)

// Sanitize repairs a record according to a report produced by Validate on that
// same record, returning a new record. The input record is not modified.
// Repair is lossy and branches on the reason a field was flagged:
//
//   - a whole-field violation removes the field entirely,
//   - a partial-list violation removes only the offending entries,
//   - a nested-entity violation removes unusable sub-records and strips
//     invalid optional subfields from the rest.
//
// Any field left empty by repair (or empty to begin with) is pruned, so the
// output never carries "", [], {} or lists of empty objects. Sanitizing an
// already-sanitized record is a no-op.
func Sanitize(record map[string]any, report *Report) map[string]any {
	cleaned := make(map[string]any, len(record))
	for key, value := range record {
		cleaned[key] = value
	}

	for field, reason := range report.InvalidFields {
		switch reason.Kind {
		case WholeFieldInvalid:
			delete(cleaned, field)
		case PartialListInvalid:
			cleaned[field] = keepValidURLs(cleaned[field])
		case NestedEntityInvalid:
			switch field {
			case "author":
				cleaned[field] = repairAuthors(cleaned[field])
			case "hasSoftwareImage":
				cleaned[field] = repairSoftwareImages(cleaned[field])
			default:
				// no repair rule for this entity field; drop it
				delete(cleaned, field)
			}
		}
	}

	pruned := 0
	for key, value := range cleaned {
		if isPrunable(value) {
			delete(cleaned, key)
			pruned++
		}
	}
	if pruned > 0 {
		slog.Debug(fmt.Sprintf("Pruned %d empty field(s) during sanitization", pruned))
	}
	return cleaned
}

// keepValidURLs filters a URL list down to its well-formed string entries.
func keepValidURLs(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}
	kept := make([]any, 0, len(list))
	for _, entry := range list {
		if u, ok := entry.(string); ok && isValidURL(u) {
			kept = append(kept, u)
		}
	}
	return kept
}

// repairAuthors drops author entries with no usable name and strips invalid
// ORCID IDs from the survivors.
func repairAuthors(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}
	kept := make([]any, 0, len(list))
	for _, entry := range list {
		author, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if name, _ := author["name"].(string); name == "" {
			continue
		}
		repaired := make(map[string]any, len(author))
		for key, v := range author {
			repaired[key] = v
		}
		if raw, present := repaired["orcidId"]; present {
			if orcid, ok := raw.(string); !ok || !isValidURL(orcid) {
				delete(repaired, "orcidId")
			}
		}
		kept = append(kept, repaired)
	}
	return kept
}

// repairSoftwareImages keeps every object entry but strips subfields that
// failed their format checks.
func repairSoftwareImages(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}
	kept := make([]any, 0, len(list))
	for _, entry := range list {
		image, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		repaired := make(map[string]any, len(image))
		for key, v := range image {
			repaired[key] = v
		}
		if raw, present := repaired["softwareVersion"]; present {
			if version, ok := raw.(string); !ok || !versionRe.MatchString(version) {
				delete(repaired, "softwareVersion")
			}
		}
		if raw, present := repaired["availableInRegistry"]; present {
			if registry, ok := raw.(string); !ok || !isValidURL(registry) {
				delete(repaired, "availableInRegistry")
			}
		}
		kept = append(kept, repaired)
	}
	return kept
}

// isPrunable extends isEmptyValue to lists whose entries are all empty
// objects, which repair can leave behind.
func isPrunable(value any) bool {
	if isEmptyValue(value) {
		return true
	}
	list, ok := value.([]any)
	if !ok {
		return false
	}
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok || len(obj) > 0 {
			return false
		}
	}
	return true
}
