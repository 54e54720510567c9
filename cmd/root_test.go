package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/entra-login/internal/config"
	"github.com/oshokin/entra-login/internal/constants"
)

const testBaseConfigContent = `
client_id: "11111111-2222-3333-4444-555555555555"
tenant_id: "contoso.onmicrosoft.com"
cache_location: "memory"
logout_mode: "end_session"
log_level: "info"
`

func newTestCommand() *cobra.Command {
	testCmd := &cobra.Command{Use: "test"}

	// Add the same flags as the root command.
	testCmd.Flags().String("client-id", "", "client id")
	testCmd.Flags().StringP("tenant-id", "t", "", "tenant id")
	testCmd.Flags().String("cache-location", "", "cache location")
	testCmd.Flags().String("logout-mode", "", "logout mode")
	testCmd.Flags().String("log-level", "", "log level")

	return testCmd
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:funlen,nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		expectError    error
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "11111111-2222-3333-4444-555555555555", cfg.ClientID)
				assert.Equal(t, "contoso.onmicrosoft.com", cfg.TenantID)
				assert.Equal(t, config.CacheLocationMemory, cfg.CacheLocation)
				assert.Equal(t, config.LogoutModeEndSession, cfg.LogoutMode)
				assert.Equal(t,
					"https://login.microsoftonline.com/contoso.onmicrosoft.com/v2.0", cfg.ParsedAuthority)
			},
		},
		{
			name:  "tenant flag re-derives the authority",
			flags: map[string]string{"tenant-id": "fabrikam.onmicrosoft.com"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "fabrikam.onmicrosoft.com", cfg.TenantID)
				assert.Equal(t,
					"https://login.microsoftonline.com/fabrikam.onmicrosoft.com/v2.0", cfg.ParsedAuthority)
			},
		},
		{
			name:  "client id flag",
			flags: map[string]string{"client-id": "client-from-flag"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "client-from-flag", cfg.ClientID)
			},
		},
		{
			name: "logout mode and cache location flags",
			flags: map[string]string{
				"logout-mode":    config.LogoutModeLocal,
				"cache-location": config.CacheLocationFile,
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.LogoutModeLocal, cfg.LogoutMode)
				assert.Equal(t, config.CacheLocationFile, cfg.CacheLocation)
				assert.NotEmpty(t, cfg.ParsedCacheFile)
			},
		},
		{
			name:  "log level flag",
			flags: map[string]string{"log-level": "debug"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name:        "invalid logout mode",
			flags:       map[string]string{"logout-mode": "everywhere"},
			expectError: config.ErrUnknownLogoutMode,
		},
		{
			name:        "empty client id",
			flags:       map[string]string{"client-id": " "},
			expectError: config.ErrEmptyClientID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary directory and config file.
			configPath := filepath.Join(t.TempDir(), "test-config.yaml")

			err := os.WriteFile(
				configPath,
				[]byte(testBaseConfigContent),
				constants.DefaultFilePermissions,
			) //nolint:gosec // It's a test file.
			require.NoError(t, err)

			cfg, err := config.LoadConfig(configPath)
			require.NoError(t, err)

			testCmd := newTestCommand()

			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue), "failed to set flag %s", flagName)
			}

			err = bindFlagsToConfig(testCmd.Flags(), cfg)
			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)

				return
			}

			require.NoError(t, err)
			tt.expectedConfig(t, cfg)
		})
	}
}

// TestChangedFlagValues tests that only changed flags are collected under their configuration keys.
func TestChangedFlagValues(t *testing.T) {
	t.Parallel()

	testCmd := newTestCommand()
	require.NoError(t, testCmd.Flags().Set("client-id", "client-a"))
	require.NoError(t, testCmd.Flags().Set("logout-mode", config.LogoutModeLocal))

	assert.Equal(t, map[string]string{
		"client_id":   "client-a",
		"logout_mode": config.LogoutModeLocal,
	}, changedFlagValues(testCmd.Flags()))
}
