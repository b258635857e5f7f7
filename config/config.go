package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// global config variables
var Service serviceConfig
var Sources map[string]sourceConfig
var Validation validationConfig
var Auth authConfig

// This struct performs the unmarshalling from the YAML config file and then
// copies its fields to the globals above.
type configFile struct {
	Service    serviceConfig           `yaml:"service"`
	Sources    map[string]sourceConfig `yaml:"sources"`
	Validation validationConfig        `yaml:"validation"`
	Auth       authConfig              `yaml:"auth"`
}

// This helper reads configuration data, returning an error indicating success
// or failure. All environment variables of the form ${ENV_VAR} are expanded.
func readConfig(bytes []byte) error {
	// Before we do anything else, expand any provided environment variables.
	bytes = []byte(os.ExpandEnv(string(bytes)))

	var conf configFile
	conf.Service.Port = 8080
	conf.Service.MaxConnections = 100
	conf.Validation.ProbeTimeout = 5
	conf.Validation.ProbeWorkers = 8
	err := yaml.Unmarshal(bytes, &conf)
	if err != nil {
		log.Printf("Couldn't parse configuration data: %s\n", err)
		return err
	}

	// copy the config data into place
	Service = conf.Service
	Sources = conf.Sources
	Validation = conf.Validation
	Auth = conf.Auth

	return err
}

// This helper validates the given configuration, returning an error that
// indicates success or failure.
func validateConfig() error {
	if err := validateServiceParameters(Service); err != nil {
		return err
	}
	if err := validateValidationParameters(Validation); err != nil {
		return err
	}

	// Were we given any metadata sources?
	if len(Sources) == 0 {
		return fmt.Errorf("No metadata sources were provided!")
	}
	for name, source := range Sources {
		if err := validateSourceParameters(name, source); err != nil {
			return err
		}
	}
	return nil
}

// Initializes the FAIRification service configuration using the given YAML
// byte data.
func Init(yamlData []byte) error {

	// Read the configuration from our YAML file.
	err := readConfig(yamlData)
	if err != nil {
		return err
	}

	// Validate the configuration.
	err = validateConfig()
	return err
}
