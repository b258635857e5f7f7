package config

import "fmt"

// a type with validation-phase configuration parameters
type validationConfig struct {
	// Per-probe timeout for URL reachability checks, in seconds.
	ProbeTimeout int `yaml:"probe_timeout"`
	// Number of concurrent reachability probe workers.
	ProbeWorkers int `yaml:"probe_workers"`
	// Flag that disables reachability probing (structural checks still run).
	SkipProbes bool `yaml:"skip_probes"`
}

// This helper validates the given validation-phase parameters.
func validateValidationParameters(params validationConfig) error {
	if params.ProbeTimeout <= 0 {
		return fmt.Errorf("Invalid probe_timeout: %d (must be positive)",
			params.ProbeTimeout)
	}
	if params.ProbeWorkers <= 0 {
		return fmt.Errorf("Invalid probe_workers: %d (must be positive)",
			params.ProbeWorkers)
	}
	return nil
}
