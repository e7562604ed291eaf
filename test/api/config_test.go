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

package api_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/storyspoiler/apitest/test/api"
)

var configVariables = []string{
	"API_BASE_URL",
	"API_USERNAME",
	"API_PASSWORD",
	"REQUEST_TIMEOUT",
	"SKIP_INTEGRATION",
	"DEBUG_LOGGING",
	"LOG_REQUESTS",
	"LOG_RESPONSES",
	"VALIDATE_CONTRACT",
}

// clearConfigEnv unsets every configuration variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()

	for _, name := range configVariables {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

// TestLoadTestConfigDefaults ensures the fixed deployment and account are used
// when nothing is configured.
func TestLoadTestConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	config, err := api.LoadTestConfig()
	require.NoError(t, err)
	require.Equal(t, api.DefaultBaseURL, config.BaseURL)
	require.Equal(t, api.DefaultUsername, config.Username)
	require.Equal(t, api.DefaultPassword, config.Password)
	require.Equal(t, 30*time.Second, config.RequestTimeout)
	require.False(t, config.SkipIntegration)
	require.False(t, config.ValidateContract)

	require.Equal(t, api.Credentials{Username: api.DefaultUsername, Password: api.DefaultPassword}, config.Credentials())
}

// TestLoadTestConfigOverrides ensures environment variables win over defaults.
func TestLoadTestConfigOverrides(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("API_BASE_URL", "http://localhost:8080")
	t.Setenv("API_USERNAME", "someone")
	t.Setenv("API_PASSWORD", "secret")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LOG_REQUESTS", "true")
	t.Setenv("VALIDATE_CONTRACT", "true")

	config, err := api.LoadTestConfig()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", config.BaseURL)
	require.Equal(t, "someone", config.Username)
	require.Equal(t, "secret", config.Password)
	require.Equal(t, 5*time.Second, config.RequestTimeout)
	require.True(t, config.LogRequests)
	require.True(t, config.ValidateContract)
}

// TestLoadTestConfigInvalid ensures unusable values are reported.
func TestLoadTestConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unparsable timeout", key: "REQUEST_TIMEOUT", value: "soon"},
		{name: "negative timeout", key: "REQUEST_TIMEOUT", value: "-1s"},
		{name: "blank username", key: "API_USERNAME", value: "   "},
		{name: "unparsable bool", key: "LOG_REQUESTS", value: "maybe"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(test.key, test.value)

			_, err := api.LoadTestConfig()
			require.Error(t, err)
		})
	}
}
