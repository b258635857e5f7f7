package llm

// These tests run the inferencer client against a canned HTTP server.

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imaging-plaza/fairifier/config"
)

func configure(t *testing.T, serverURL string) {
	yaml := fmt.Sprintf(`
sources:
  llm:
    name: LLM Inferencer
    url: %s
`, serverURL)
	assert.Nil(t, config.Init([]byte(yaml)))
}

func TestInferRecord(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			fmt.Fprint(w, `{
                "description": "Deep learning for single-cell analysis",
                "hasFunding": [{"identifier": "SNSF 42"}]
            }`)
		}))
	defer server.Close()
	configure(t, server.URL)

	c, err := NewClient("llm")
	assert.Nil(t, err)
	record, err := c.InferRecord(context.Background(), "https://github.com/x")
	assert.Nil(t, err)

	assert.Equal(t, "/record", gotPath)
	assert.Equal(t, "Deep learning for single-cell analysis", record["description"])
	assert.Len(t, record["hasFunding"], 1)
}

func TestInferRecordReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
	defer server.Close()
	configure(t, server.URL)

	c, err := NewClient("llm")
	assert.Nil(t, err)
	_, err = c.InferRecord(context.Background(), "https://github.com/x")
	assert.NotNil(t, err)
}
