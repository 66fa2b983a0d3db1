/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultUsername    = "puja"
	DefaultPassword    = "mypassword"
	DefaultNewQuantity = 15
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	Username       string
	Password       string
	NewQuantity    int
	DebugLogging   bool
	LogRequests    bool
	LogResponses   bool
	ValidateSchema bool

	// Integration enables the live API test suites.
	Integration bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Username:    DefaultUsername,
		Password:    DefaultPassword,
		NewQuantity: DefaultNewQuantity,
	}
}

// LoadConfig loads configuration from environment variables, after merging in
// any .env files given.  Missing files are ignored.
func LoadConfig(envFiles ...string) (*Config, error) {
	loadEnvFiles(envFiles)

	config := &Config{
		BaseURL:        getStringWithDefault("API_BASE_URL", DefaultBaseURL),
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", 0),
		Username:       getStringWithDefault("TEST_USERNAME", DefaultUsername),
		Password:       getStringWithDefault("TEST_PASSWORD", DefaultPassword),
		NewQuantity:    getIntWithDefault("TEST_NEW_QUANTITY", DefaultNewQuantity),
		DebugLogging:   getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:   getBoolWithDefault("LOG_RESPONSES", false),
		ValidateSchema: getBoolWithDefault("VALIDATE_SCHEMA", false),
		Integration:    getBoolWithDefault("RUN_INTEGRATION", false),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base URL %q: %w", ErrInvalidConfig, c.BaseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base URL %q must use http or https", ErrInvalidConfig, c.BaseURL)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: base URL %q has no host", ErrInvalidConfig, c.BaseURL)
	}

	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("%w: credentials must not be empty", ErrInvalidConfig)
	}

	if c.NewQuantity < 0 {
		return fmt.Errorf("%w: new quantity %d is negative", ErrInvalidConfig, c.NewQuantity)
	}

	return nil
}

// Credentials returns the account the run registers and logs in with.
func (c *Config) Credentials() Credentials {
	return Credentials{
		Username: c.Username,
		Password: c.Password,
	}
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFiles(paths []string) {
	var found []string

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}

	if len(found) == 0 {
		// No .env file is fine when the environment is set directly.
		return
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(found...); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env files %v: %v\n", found, err)
	}
}
