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

import (
	"encoding/json"
	"fmt"
	"os"
)

// Context is a JSON-LD context document: a versioned vocabulary file mapping
// flat field names to fully-qualified predicate IRIs. A record field absent
// from the context cannot be expanded.
type Context map[string]string

// DefaultContext returns a context covering every field declared in the
// registry tables. It is what the service uses when no context file is
// configured, and it is by construction in sync with the registry.
func DefaultContext() Context {
	ctx := make(Context, len(softwareFields)+len(entityFields))
	for _, table := range []map[string]FieldInfo{softwareFields, entityFields} {
		for name, info := range table {
			ctx[name] = info.Predicate
		}
	}
	return ctx
}

// LoadContext reads a context document from a JSON file. The file may be a
// bare term mapping or wrapped in a top-level "@context" key, and each term
// may be either an IRI string or an object with an "@id" member.
func LoadContext(path string) (Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseContext(data)
}

// ParseContext parses a context document from JSON bytes.
func ParseContext(data []byte) (Context, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: invalid context document: %w", err)
	}
	if wrapped, found := raw["@context"]; found {
		if err := json.Unmarshal(wrapped, &raw); err != nil {
			return nil, fmt.Errorf("schema: invalid @context member: %w", err)
		}
	}

	ctx := make(Context, len(raw))
	for term, value := range raw {
		if len(term) > 0 && term[0] == '@' { // keywords aren't terms
			continue
		}
		var iri string
		if err := json.Unmarshal(value, &iri); err == nil {
			ctx[term] = iri
			continue
		}
		var def struct {
			Id string `json:"@id"`
		}
		if err := json.Unmarshal(value, &def); err != nil || def.Id == "" {
			return nil, fmt.Errorf("schema: context term %q has no usable IRI", term)
		}
		ctx[term] = def.Id
	}
	return ctx, nil
}

// Resolve maps a flat field name to its predicate IRI.
func (c Context) Resolve(fieldName string) (string, bool) {
	iri, found := c[fieldName]
	return iri, found
}
