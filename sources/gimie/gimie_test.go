package gimie

// These tests run the extractor client against a canned HTTP server.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imaging-plaza/fairifier/config"
	"github.com/imaging-plaza/fairifier/schema"
	"github.com/imaging-plaza/fairifier/sources/client"
)

const graphDocument = `{
    "@context": "https://schema.org",
    "@graph": [
        {
            "@id": "https://github.com/example/tool",
            "@type": ["http://schema.org/SoftwareSourceCode"],
            "http://schema.org/name": [{"@value": "example/tool"}]
        }
    ]
}`

func configure(t *testing.T, serverURL string) {
	yaml := fmt.Sprintf(`
sources:
  gimie:
    name: Gimie Extractor
    url: %s
    auth:
      client_secret: s3cret
`, serverURL)
	assert.Nil(t, config.Init([]byte(yaml)))
}

func TestExtractGraphFromDocument(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			json.NewDecoder(r.Body).Decode(&gotBody)
			fmt.Fprint(w, graphDocument)
		}))
	defer server.Close()
	configure(t, server.URL)

	c, err := NewClient("gimie")
	assert.Nil(t, err)
	graph, err := c.ExtractGraph(context.Background(),
		"https://github.com/example/tool")
	assert.Nil(t, err)

	assert.Equal(t, "/graph", gotPath)
	assert.Equal(t, "Bearer s3cret", gotAuth)
	assert.Equal(t, "https://github.com/example/tool", gotBody["url"])
	assert.Len(t, graph, 1)
	assert.NotNil(t, graph.FirstOfType(schema.TypeSoftwareSourceCode))
}

func TestExtractGraphFromBareNodeList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"@id": "x", "@type": ["http://schema.org/Person"]}]`)
		}))
	defer server.Close()
	configure(t, server.URL)

	c, err := NewClient("gimie")
	assert.Nil(t, err)
	graph, err := c.ExtractGraph(context.Background(), "https://github.com/x")
	assert.Nil(t, err)
	assert.Len(t, graph, 1)
	assert.Equal(t, "x", graph[0].ID())
}

func TestExtractGraphReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
	defer server.Close()
	configure(t, server.URL)

	c, err := NewClient("gimie")
	assert.Nil(t, err)
	_, err = c.ExtractGraph(context.Background(), "https://github.com/x")
	assert.NotNil(t, err)
	requestErr, ok := err.(client.RequestError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, requestErr.StatusCode)
}

func TestNewClientRequiresConfiguration(t *testing.T) {
	configure(t, "https://gimie.example.org")
	_, err := NewClient("nope")
	assert.NotNil(t, err)
}
