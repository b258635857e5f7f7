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
	"github.com/imaging-plaza/fairifier/schema"
)

// Expand converts a flat record into one expanded graph node using the given
// context document. Every key of the record is mapped to its predicate IRI
// and its values are boxed per the expansion convention: URL-typed values
// become {"@id": v} references, everything else {"@value": v} literals, and
// each predicate's value is a list even for singular fields. Fields absent
// from the record are simply omitted; a field absent from the context aborts
// with SchemaMismatchError.
func Expand(record map[string]any, ctx schema.Context) (GraphNode, error) {
	node := make(GraphNode)
	for field, value := range record {
		if field == "@id" || field == "@type" {
			node[field] = value
			continue
		}
		predicate, found := ctx.Resolve(field)
		if !found {
			return nil, SchemaMismatchError{Field: field}
		}

		var boxed []any
		for _, entry := range asList(value) {
			boxed = append(boxed, boxValue(field, entry, ctx))
		}
		if boxed == nil {
			continue // no null placeholders in the expanded form
		}
		node[predicate] = boxed
	}
	if _, found := node["@type"]; !found {
		node["@type"] = []any{schema.TypeSoftwareSourceCode}
	}
	return node, nil
}

// boxValue wraps one primitive value as a linked-data value object. Nested
// maps (inline entities) are expanded recursively through the context;
// unknown keys inside nested entities are dropped rather than aborting,
// since sub-entity shapes are not under the expansion contract.
func boxValue(field string, value any, ctx schema.Context) any {
	if nested, ok := value.(map[string]any); ok {
		expanded := make(map[string]any)
		for key, entry := range nested {
			predicate, found := ctx.Resolve(key)
			if !found {
				continue
			}
			var boxed []any
			for _, item := range asList(entry) {
				boxed = append(boxed, boxValue(key, item, ctx))
			}
			expanded[predicate] = boxed
		}
		return expanded
	}

	if info, found := schema.InfoFor(field); found && info.Kind == schema.KindURL {
		return map[string]any{"@id": value}
	}
	return map[string]any{"@value": value}
}
