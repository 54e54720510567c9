package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/entra-login/internal/constants"
)

const testConfigContent = `
client_id: "11111111-2222-3333-4444-555555555555"
tenant_id: "contoso.onmicrosoft.com"
log_level: "debug"
`

// validConfig returns a configuration that passes validation.
func validConfig() *Config {
	return &Config{
		ClientID:              "11111111-2222-3333-4444-555555555555",
		TenantID:              "contoso.onmicrosoft.com",
		RedirectURI:           DefaultLocalURL,
		CacheLocation:         CacheLocationMemory,
		LogoutMode:            LogoutModeEndSession,
		PostLogoutRedirectURI: DefaultLocalURL,
		EndSessionBaseURL:     DefaultInstanceURL,
		LocalReloadURL:        DefaultLocalURL,
		LocalReloadDelay:      "30s",
		PopupTimeout:          "10m",
		LogLevel:              "info",
	}
}

// TestLoadConfig tests the LoadConfig function.
//
//nolint:tparallel // Cannot run in parallel due to Viper global state.
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		expectError   bool
		expectedError string
	}{
		{
			name:          "valid config file gets defaults",
			configContent: testConfigContent,
		},
		{
			name:          "non-existent file",
			expectError:   true,
			expectedError: "failed to read config from file",
		},
		{
			name: "invalid yaml",
			configContent: `
invalid: yaml: content: [unclosed
`,
			expectError:   true,
			expectedError: "failed to read config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.configContent != "" {
				err := os.WriteFile(configPath, []byte(tt.configContent), constants.DefaultFilePermissions)
				require.NoError(t, err)
			}

			cfg, err := LoadConfig(configPath)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "11111111-2222-3333-4444-555555555555", cfg.ClientID)
			assert.Equal(t, "contoso.onmicrosoft.com", cfg.TenantID)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, DefaultLocalURL, cfg.RedirectURI)
			assert.Equal(t, CacheLocationFile, cfg.CacheLocation)
			assert.Equal(t, LogoutModeEndSession, cfg.LogoutMode)
			assert.Equal(t, DefaultLocalURL, cfg.PostLogoutRedirectURI)
			assert.Equal(t, DefaultInstanceURL, cfg.EndSessionBaseURL)
			assert.Equal(t, "30s", cfg.LocalReloadDelay)
			assert.Equal(t, "10m", cfg.PopupTimeout)
		})
	}
}

// TestValidateConfig tests the ValidateConfig function.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		modify      func(*Config)
		expectedErr error
		errorMsg    string
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name:        "empty client id",
			modify:      func(c *Config) { c.ClientID = "" },
			expectedErr: ErrEmptyClientID,
		},
		{
			name:        "whitespace client id",
			modify:      func(c *Config) { c.ClientID = "   " },
			expectedErr: ErrEmptyClientID,
		},
		{
			name:        "no tenant and no authority",
			modify:      func(c *Config) { c.TenantID = "" },
			expectedErr: ErrEmptyTenantID,
		},
		{
			name: "authority without tenant requires local logout",
			modify: func(c *Config) {
				c.TenantID = ""
				c.Authority = "https://idp.example.com/realms/demo"
			},
			expectedErr: ErrEmptyTenantID,
			errorMsg:    "required by logout_mode 'end_session'",
		},
		{
			name: "authority without tenant with local logout",
			modify: func(c *Config) {
				c.TenantID = ""
				c.Authority = "https://idp.example.com/realms/demo"
				c.LogoutMode = LogoutModeLocal
			},
		},
		{
			name:        "relative redirect uri",
			modify:      func(c *Config) { c.RedirectURI = "/callback" },
			expectedErr: ErrInvalidURL,
			errorMsg:    "redirect_uri",
		},
		{
			name:        "relative post logout redirect uri",
			modify:      func(c *Config) { c.PostLogoutRedirectURI = "localhost" },
			expectedErr: ErrInvalidURL,
			errorMsg:    "post_logout_redirect_uri",
		},
		{
			name:        "unknown cache location",
			modify:      func(c *Config) { c.CacheLocation = "localStorage" },
			expectedErr: ErrUnknownCacheLocation,
		},
		{
			name:        "unknown logout mode",
			modify:      func(c *Config) { c.LogoutMode = "everywhere" },
			expectedErr: ErrUnknownLogoutMode,
		},
		{
			name:     "unparsable local reload delay",
			modify:   func(c *Config) { c.LocalReloadDelay = "soon" },
			errorMsg: "failed to parse local reload delay",
		},
		{
			name:        "zero local reload delay",
			modify:      func(c *Config) { c.LocalReloadDelay = "0s" },
			expectedErr: ErrInvalidLocalReloadDelay,
		},
		{
			name:        "negative popup timeout",
			modify:      func(c *Config) { c.PopupTimeout = "-1m" },
			expectedErr: ErrInvalidPopupTimeout,
		},
		{
			name:        "unknown log level",
			modify:      func(c *Config) { c.LogLevel = "verbose" },
			expectedErr: ErrUnknownLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			err := ValidateConfig(cfg)

			if tt.expectedErr == nil && tt.errorMsg == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			}

			if tt.errorMsg != "" {
				assert.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}

// TestValidateConfig_DerivedFields tests that validation fills the parsed fields.
func TestValidateConfig_DerivedFields(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.CacheLocation = CacheLocationFile
	cfg.CacheFile = "/tmp/entra-login/accounts.yaml"
	cfg.LogLevel = "warn"

	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, "https://login.microsoftonline.com/contoso.onmicrosoft.com/v2.0", cfg.ParsedAuthority)
	assert.Equal(t, "/tmp/entra-login/accounts.yaml", cfg.ParsedCacheFile)
	assert.Equal(t, 30*time.Second, cfg.ParsedLocalReloadDelay)
	assert.Equal(t, 10*time.Minute, cfg.ParsedPopupTimeout)
	assert.Equal(t, zapcore.WarnLevel, cfg.ParsedLogLevel)
}

// TestValidateConfig_AuthorityOverride tests that an explicit authority wins over the tenant.
func TestValidateConfig_AuthorityOverride(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Authority = "https://login.microsoftonline.com/common/v2.0/"

	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, "https://login.microsoftonline.com/common/v2.0", cfg.ParsedAuthority)
	assert.Empty(t, cfg.ParsedCacheFile)
}

// TestSaveConfig_NewFile tests that SaveConfig creates a file with defaults.
//
//nolint:paralleltest // SaveConfig uses its own viper instance, but file IO is kept sequential.
func TestSaveConfig_NewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "new.yaml")

	err := SaveConfig(configPath, map[string]string{
		"client_id": "client-a",
		"tenant_id": "tenant-a",
	})
	require.NoError(t, err)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var saved map[string]any
	require.NoError(t, yaml.Unmarshal(content, &saved))

	assert.Equal(t, "client-a", saved["client_id"])
	assert.Equal(t, "tenant-a", saved["tenant_id"])
	assert.Equal(t, LogoutModeEndSession, saved["logout_mode"])
	assert.Equal(t, DefaultLocalURL, saved["post_logout_redirect_uri"])
}

// TestSaveConfig_PreservesOrder tests that SaveConfig updates an existing file in place.
//
//nolint:paralleltest // File IO is kept sequential.
func TestSaveConfig_PreservesOrder(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "existing.yaml")

	original := "# registration\nlog_level: debug\nclient_id: old\nlogout_mode: local\n"
	require.NoError(t, os.WriteFile(configPath, []byte(original), constants.DefaultFilePermissions))

	err := SaveConfig(configPath, map[string]string{
		"client_id": "new",
		"tenant_id": "contoso",
	})
	require.NoError(t, err)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "# registration")
	assert.Contains(t, text, `client_id: "new"`)
	assert.Contains(t, text, `tenant_id: "contoso"`)
	assert.Contains(t, text, "logout_mode: local")
	assert.Less(t, strings.Index(text, "log_level"), strings.Index(text, "client_id"))
	assert.Less(t, strings.Index(text, "logout_mode"), strings.Index(text, "tenant_id"))
}
