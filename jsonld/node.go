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

// Package jsonld implements the two inverse conversions between the flat
// record form and the expanded linked-data node form: expansion (record to
// graph node, driven by a context document) and projection (graph to typed
// record, driven by the schema registry).
package jsonld

import "slices"

// A GraphNode is one expanded linked-data node: an "@id" IRI, an "@type"
// list, and predicate-IRI keys whose values are lists of boxed value objects
// ({"@value": v} for literals, {"@id": v} for references). It is carried as
// a raw map because extractor output may use predicates outside our
// vocabulary, which must pass through merging untouched.
type GraphNode map[string]any

// ID returns the node's IRI, or "" for anonymous nodes.
func (n GraphNode) ID() string {
	id, _ := n["@id"].(string)
	return id
}

// Types returns the node's type IRIs.
func (n GraphNode) Types() []string {
	var types []string
	for _, entry := range asList(n["@type"]) {
		if iri, ok := entry.(string); ok {
			types = append(types, iri)
		}
	}
	return types
}

// HasType reports whether the node carries the given type IRI.
func (n GraphNode) HasType(typeIRI string) bool {
	return slices.Contains(n.Types(), typeIRI)
}

// A LinkedGraph is an ordered collection of graph nodes, as produced by the
// extractor or by the merger.
type LinkedGraph []GraphNode

// FirstOfType returns the first node whose type set contains the given IRI,
// or nil if there is none.
func (g LinkedGraph) FirstOfType(typeIRI string) GraphNode {
	for _, node := range g {
		if node.HasType(typeIRI) {
			return node
		}
	}
	return nil
}

// ByID returns an index of the graph's identified nodes.
func (g LinkedGraph) ByID() map[string]GraphNode {
	index := make(map[string]GraphNode, len(g))
	for _, node := range g {
		if id := node.ID(); id != "" {
			index[id] = node
		}
	}
	return index
}

// A Document wraps a linked graph with its graph-level context declaration,
// matching the persisted JSON-LD form.
type Document struct {
	Context any         `json:"@context"`
	Graph   LinkedGraph `json:"@graph"`
}

// unboxValue extracts a primitive from a boxed value object: literals yield
// their "@value", references their "@id", and lists recurse into their first
// element. Bare primitives pass through.
func unboxValue(obj any) any {
	switch v := obj.(type) {
	case map[string]any:
		if value, found := v["@value"]; found {
			return value
		}
		return v["@id"]
	case []any:
		if len(v) > 0 {
			return unboxValue(v[0])
		}
		return nil
	default:
		return obj
	}
}

// asList normalizes a predicate's value to a list.
func asList(value any) []any {
	if value == nil {
		return nil
	}
	if list, ok := value.([]any); ok {
		return list
	}
	return []any{value}
}
