/*
Copyright 2024-2025 the Unikorn Authors.
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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the StorySpoiler deployment the suite targets.
	DefaultBaseURL = "https://d3s5nxhwblsjbi.cloudfront.net"
	// DefaultUsername and DefaultPassword identify the fixed test account.
	DefaultUsername = "bospoinerstory123"
	DefaultPassword = "987654321"
)

type TestConfig struct {
	BaseURL          string        `env:"API_BASE_URL"      envDefault:"https://d3s5nxhwblsjbi.cloudfront.net"`
	Username         string        `env:"API_USERNAME"      envDefault:"bospoinerstory123"`
	Password         string        `env:"API_PASSWORD"      envDefault:"987654321"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT"   envDefault:"30s"`
	SkipIntegration  bool          `env:"SKIP_INTEGRATION"`
	DebugLogging     bool          `env:"DEBUG_LOGGING"`
	LogRequests      bool          `env:"LOG_REQUESTS"`
	LogResponses     bool          `env:"LOG_RESPONSES"`
	ValidateContract bool          `env:"VALIDATE_CONTRACT"`
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Every setting has a default, so an error means a value was present but unusable.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parsing test configuration: %w", err)
	}

	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Credentials returns the account the suite authenticates as.
func (c *TestConfig) Credentials() Credentials {
	return Credentials{
		Username: c.Username,
		Password: c.Password,
	}
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
		"../../test/.env",    // From test/api directory
		"test/.env",          // From the repository root
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
func validateRequiredFields(config *TestConfig) error {
	var missing []string

	required := []struct {
		envVar string
		value  string
	}{
		{"API_BASE_URL", config.BaseURL},
		{"API_USERNAME", config.Username},
		{"API_PASSWORD", config.Password},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s. Please set these environment variables or add them to a .env file", strings.Join(missing, ", "))
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", config.RequestTimeout)
	}

	return nil
}
