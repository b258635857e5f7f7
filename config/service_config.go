package config

import (
	"fmt"
	"os"
)

// a type with service configuration parameters
type serviceConfig struct {
	// Port on which the service listens.
	Port int `json:"port" yaml:"port"`
	// Maximum number of allowed incoming connections.
	MaxConnections int `json:"max_connections" yaml:"max_connections"`
	// Directory in which the service stores its run journal and any merged
	// JSON-LD documents it persists.
	DataDirectory string `json:"data_directory" yaml:"data_directory"`
	// Path to a JSON-LD context document overriding the built-in vocabulary.
	ContextFile string `json:"context_file" yaml:"context_file"`
	// Flag indicating whether debug logging is enabled.
	Debug bool `json:"debug" yaml:"debug"`
}

// This helper validates the given service parameters, returning an
// error indicating success or failure.
func validateServiceParameters(params serviceConfig) error {
	if params.Port < 0 || params.Port > 65535 {
		return fmt.Errorf("Invalid port: %d (must be 0-65535)", params.Port)
	}
	if params.MaxConnections <= 0 {
		return fmt.Errorf("Invalid max_connections: %d (must be positive)",
			params.MaxConnections)
	}
	if params.DataDirectory != "" {
		info, err := os.Stat(params.DataDirectory)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("Invalid data_directory: %s", params.DataDirectory)
		}
	}
	if params.ContextFile != "" {
		if _, err := os.Stat(params.ContextFile); err != nil {
			return fmt.Errorf("Invalid context_file: %s", params.ContextFile)
		}
	}
	return nil
}
