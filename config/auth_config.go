package config

type authConfig struct {
	// the fernet key used to mint and verify access tokens; an empty key
	// disables authentication
	// DO NOT STORE THIS IN A CONFIG FILE! Use an environment variable instead
	Key string `yaml:"key"`
	// the client secret passed in headers to authorize requests to a source
	// DO NOT STORE THIS IN A CONFIG FILE! Use an environment variable instead
	ClientSecret string `yaml:"client_secret"`
}
