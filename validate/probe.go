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
	"context"
	"fmt"
	"net/http"
	"sync"
)

// checkReachability probes every URL found in the record's URL fields and
// records a warning for each one that doesn't respond. Probes run on a
// bounded pool of workers, each with its own timeout, so one slow host can't
// stall validation. This check is advisory: failures never become blocking
// issues.
func (v *Validator) checkReachability(record map[string]any, report *Report) {
	urls := collectURLs(record)
	if len(urls) == 0 {
		return
	}

	reachable := make([]bool, len(urls))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := v.probeWorkers
	if workers > len(urls) {
		workers = len(urls)
	}
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reachable[i] = v.probe(urls[i])
			}
		}()
	}
	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// warnings preserve the order URLs appear in the record
	for i, url := range urls {
		if !reachable[i] {
			report.addWarning(fmt.Sprintf("Unreachable URL: %s", url))
		}
	}
}

// probe issues a HEAD request and treats any 2xx/3xx response as reachable.
func (v *Validator) probe(url string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), v.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}

// collectURLs gathers the string values of the singular and list URL fields,
// in field order.
func collectURLs(record map[string]any) []string {
	var urls []string
	for _, field := range singularURLFields {
		if u, ok := record[field].(string); ok && u != "" {
			urls = append(urls, u)
		}
	}
	for _, field := range urlListFields {
		if list, ok := record[field].([]any); ok {
			for _, entry := range list {
				if u, ok := entry.(string); ok && u != "" {
					urls = append(urls, u)
				}
			}
		}
	}
	return urls
}
