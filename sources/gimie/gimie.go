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

// Package gimie talks to the gimie extractor service, which derives a
// JSON-LD graph from a repository's structure and metadata files.
package gimie

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/imaging-plaza/fairifier/config"
	"github.com/imaging-plaza/fairifier/jsonld"
	"github.com/imaging-plaza/fairifier/sources/client"
)

const requestTimeout = 60 * time.Second

// Client calls the extractor's graph resource.
type Client struct {
	// source identifier
	Id string
	// extractor base URL
	BaseURL string
	// client secret used for authentication
	Secret string
	// HTTP client used for requests
	Http http.Client
}

func NewClient(name string) (*Client, error) {
	sourceConfig, ok := config.Sources[name]
	if !ok {
		return nil, fmt.Errorf("Source %s not found", name)
	}
	return &Client{
		Id:      name,
		BaseURL: sourceConfig.URL,
		Secret:  sourceConfig.Auth.ClientSecret,
		Http:    client.SecureHttpClient(requestTimeout),
	}, nil
}

// ExtractGraph asks the extractor to derive a graph for the repository at the
// given URL. The extractor reports either a full JSON-LD document or a bare
// node list; both are accepted.
func (c *Client) ExtractGraph(ctx context.Context, repositoryURL string) (jsonld.LinkedGraph, error) {
	u, err := url.ParseRequestURI(c.BaseURL)
	if err != nil {
		return nil, err
	}
	u.Path = "graph"

	payload := struct {
		URL string `json:"url"`
	}{URL: repositoryURL}
	var response json.RawMessage
	err = client.PostJSON(ctx, &c.Http, c.Id, u.String(), c.Secret, payload, &response)
	if err != nil {
		return nil, err
	}
	return decodeGraph(response)
}

func decodeGraph(data json.RawMessage) (jsonld.LinkedGraph, error) {
	var graph jsonld.LinkedGraph
	if err := json.Unmarshal(data, &graph); err == nil {
		return graph, nil
	}
	var doc jsonld.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Graph, nil
}
