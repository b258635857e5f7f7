package config

import (
	"fmt"
	"net/url"
)

// A metadata source produces part of a software record: a JSON-LD graph (the
// extractor) or a flat record (the inferencer).
type sourceConfig struct {
	// the full name of the source
	Name string `yaml:"name"`
	// the name of the organization hosting the source
	Organization string `yaml:"organization"`
	// the base URL at which the source is accessed
	URL string `yaml:"url"`
	// authorization data (client secret passed in headers to authorize requests)
	Auth authConfig `yaml:"auth"`
}

// This helper validates one source entry.
func validateSourceParameters(name string, params sourceConfig) error {
	if params.URL == "" {
		return fmt.Errorf("Source %s has no URL", name)
	}
	u, err := url.Parse(params.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("Source %s has an invalid URL: %s", name, params.URL)
	}
	return nil
}
