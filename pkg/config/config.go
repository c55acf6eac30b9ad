package config

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries everything needed to reach the remote API. Values are
// handed to the dispatcher explicitly; nothing here is read from the
// environment at request time.
type Config struct {
	Spec string `json:"spec" yaml:"spec"`
	URL  string `json:"url" yaml:"url"`

	Bearer   string `json:"bearer" yaml:"bearer"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`

	Headers map[string]string `json:"headers" yaml:"headers"`
}

// Parse reads a config file, accepting JSON or YAML.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	var config Config

	if err := json.Unmarshal(data, &config); err == nil {
		return &config, nil
	}

	if err := yaml.Unmarshal(data, &config); err == nil {
		return &config, nil
	}

	return nil, errors.New("failed to parse config file")
}

// ParseDefault loads the first of apibridge.yaml / apibridge.json found
// in the working directory, or an empty config when none exists.
func ParseDefault() *Config {
	for _, name := range []string{"apibridge.yaml", "apibridge.json"} {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			continue
		}

		if config, err := Parse(name); err == nil {
			return config
		}
	}

	return &Config{}
}

// FromEnv reads the APIBRIDGE_* environment variables.
// APIBRIDGE_HEADERS holds comma-separated Name=value pairs.
func FromEnv() *Config {
	return &Config{
		Spec: os.Getenv("APIBRIDGE_SPEC"),
		URL:  os.Getenv("APIBRIDGE_URL"),

		Bearer:   os.Getenv("APIBRIDGE_BEARER"),
		Username: os.Getenv("APIBRIDGE_USERNAME"),
		Password: os.Getenv("APIBRIDGE_PASSWORD"),

		Headers: parseHeaders(os.Getenv("APIBRIDGE_HEADERS")),
	}
}

// Merge overlays non-empty values of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Spec != "" {
		c.Spec = other.Spec
	}

	if other.URL != "" {
		c.URL = other.URL
	}

	if other.Bearer != "" {
		c.Bearer = other.Bearer
	}

	if other.Username != "" {
		c.Username = other.Username
	}

	if other.Password != "" {
		c.Password = other.Password
	}

	for name, value := range other.Headers {
		if c.Headers == nil {
			c.Headers = map[string]string{}
		}

		c.Headers[name] = value
	}
}

func parseHeaders(value string) map[string]string {
	if value == "" {
		return nil
	}

	headers := map[string]string{}

	for _, pair := range strings.Split(value, ",") {
		name, value, ok := strings.Cut(pair, "=")

		if !ok {
			continue
		}

		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		if name == "" {
			continue
		}

		headers[name] = value
	}

	return headers
}
