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

// Package llm talks to the generative inferencer service, which reads
// repository content and produces a flat metadata record. Inferred values are
// best-effort and rank below extracted ones during merging.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/imaging-plaza/fairifier/config"
	"github.com/imaging-plaza/fairifier/sources/client"
)

// the inferencer reads whole repositories, so give it time
const requestTimeout = 5 * time.Minute

// Client calls the inferencer's record resource.
type Client struct {
	// source identifier
	Id string
	// inferencer base URL
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

// InferRecord asks the inferencer to produce a flat record (literal field
// names, not predicate IRIs) for the repository at the given URL.
func (c *Client) InferRecord(ctx context.Context, repositoryURL string) (map[string]any, error) {
	u, err := url.ParseRequestURI(c.BaseURL)
	if err != nil {
		return nil, err
	}
	u.Path = "record"

	payload := struct {
		URL string `json:"url"`
	}{URL: repositoryURL}
	record := make(map[string]any)
	err = client.PostJSON(ctx, &c.Http, c.Id, u.String(), c.Secret, payload, &record)
	if err != nil {
		return nil, err
	}
	return record, nil
}
