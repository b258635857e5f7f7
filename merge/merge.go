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

// Package merge combines an extractor-produced linked graph with an
// inferencer-produced flat record. The priority rule is fixed: the
// deterministic extractor always wins on overlap, the inferencer only fills
// gaps.
package merge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/imaging-plaza/fairifier/jsonld"
	"github.com/imaging-plaza/fairifier/schema"
)

// the graph-level context declaration attached to merged output
const defaultContext = "https://schema.org"

// Graphs merges an inferencer record into the anchor node of an extractor
// graph, returning the combined document. Inferencer keys already present on
// the anchor node are discarded; all other nodes of the extractor graph pass
// through unmodified. Fails with MissingPrimaryNodeError if the graph has no
// anchor node.
func Graphs(extractorGraph jsonld.LinkedGraph, inferencerRecord map[string]any) (*jsonld.Document, error) {
	anchor := extractorGraph.FirstOfType(schema.TypeSoftwareSourceCode)
	if anchor == nil {
		return nil, MissingPrimaryNodeError{}
	}

	// copy the graph so neither input is mutated
	merged := make(jsonld.LinkedGraph, len(extractorGraph))
	for i, node := range extractorGraph {
		copied := make(jsonld.GraphNode, len(node))
		for key, value := range node {
			copied[key] = value
		}
		merged[i] = copied
	}
	target := merged.FirstOfType(schema.TypeSoftwareSourceCode)

	added := 0
	for key, value := range inferencerRecord {
		if _, present := target[key]; !present {
			target[key] = value
			added++
		}
	}
	slog.Debug(fmt.Sprintf("Merged %d inferencer fields into the software node", added))

	return &jsonld.Document{Context: defaultContext, Graph: merged}, nil
}

// WriteDocument persists a merged document as an indented JSON-LD file. The
// write is atomic from the caller's point of view: the document lands in a
// temporary file first and is renamed into place only when fully written, so
// a failure leaves no partial file behind.
func WriteDocument(doc *jsonld.Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".merged-*.jsonld")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
