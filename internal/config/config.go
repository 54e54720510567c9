package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/entra-login/internal/constants"
	"github.com/oshokin/entra-login/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// ClientID is the application (client) ID registered with the identity provider.
	ClientID string `mapstructure:"client_id" yaml:"client_id"`
	// TenantID is the directory (tenant) ID, or one of "common", "organizations", "consumers".
	TenantID string `mapstructure:"tenant_id" yaml:"tenant_id"`
	// Authority overrides the OpenID Connect issuer URL derived from TenantID.
	Authority string `mapstructure:"authority" yaml:"authority,omitempty"`
	// RedirectURI is the redirect URI registered for the public client.
	RedirectURI string `mapstructure:"redirect_uri" yaml:"redirect_uri"`
	// CacheLocation selects where accounts are remembered: "memory" or "file".
	CacheLocation string `mapstructure:"cache_location" yaml:"cache_location"`
	// CacheFile is the account cache path used when CacheLocation is "file".
	// Empty means a file inside the user cache directory.
	CacheFile string `mapstructure:"cache_file" yaml:"cache_file,omitempty"`
	// LogoutMode selects the logout strategy: "end_session" or "local".
	LogoutMode string `mapstructure:"logout_mode" yaml:"logout_mode"`
	// PostLogoutRedirectURI is where the identity provider sends the browser after sign-out.
	PostLogoutRedirectURI string `mapstructure:"post_logout_redirect_uri" yaml:"post_logout_redirect_uri"`
	// EndSessionBaseURL is the host the end-session URL is built against.
	EndSessionBaseURL string `mapstructure:"end_session_base_url" yaml:"end_session_base_url"`
	// LocalReloadURL is the page opened after a local sign-out.
	LocalReloadURL string `mapstructure:"local_reload_url" yaml:"local_reload_url"`
	// LocalReloadDelay is the delay before LocalReloadURL is opened (e.g., "30s").
	LocalReloadDelay string `mapstructure:"local_reload_delay" yaml:"local_reload_delay"`
	// PopupTimeout is the maximum time to wait for the sign-in window (e.g., "10m").
	PopupTimeout string `mapstructure:"popup_timeout" yaml:"popup_timeout"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// ParsedAuthority is the resolved issuer URL.
	ParsedAuthority string `yaml:"-"`
	// ParsedCacheFile is the resolved account cache path.
	ParsedCacheFile string `yaml:"-"`
	// ParsedLocalReloadDelay is the parsed local reload delay.
	ParsedLocalReloadDelay time.Duration `yaml:"-"`
	// ParsedPopupTimeout is the parsed sign-in window timeout.
	ParsedPopupTimeout time.Duration `yaml:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".entra-login.yaml"

	// DefaultInstanceURL is the Microsoft identity platform host.
	DefaultInstanceURL = "https://login.microsoftonline.com"

	// DefaultLocalURL is the local application address used for redirects.
	DefaultLocalURL = "http://localhost:4200"

	// CacheLocationMemory keeps accounts for the lifetime of the process.
	CacheLocationMemory = "memory"
	// CacheLocationFile keeps accounts in a YAML file.
	CacheLocationFile = "file"

	// LogoutModeEndSession ends the identity provider session with an explicit end-session redirect.
	LogoutModeEndSession = "end_session"
	// LogoutModeLocal forgets the active account locally and reloads the local page later.
	LogoutModeLocal = "local"

	// defaultCacheFilename is the account cache file name inside the user cache directory.
	defaultCacheFilename = "accounts.yaml"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyClientID indicates that the client ID is missing.
	ErrEmptyClientID = errors.New("client_id cannot be empty")
	// ErrEmptyTenantID indicates that neither a tenant nor an authority is configured.
	ErrEmptyTenantID = errors.New("tenant_id cannot be empty")
	// ErrInvalidURL indicates that one of the URL settings is not an absolute URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrUnknownCacheLocation indicates that the cache location is not recognized.
	ErrUnknownCacheLocation = errors.New("unknown cache_location")
	// ErrUnknownLogoutMode indicates that the logout mode is not recognized.
	ErrUnknownLogoutMode = errors.New("unknown logout_mode")
	// ErrInvalidLocalReloadDelay indicates that the local reload delay is invalid.
	ErrInvalidLocalReloadDelay = errors.New("local_reload_delay must be positive")
	// ErrInvalidPopupTimeout indicates that the popup timeout is invalid.
	ErrInvalidPopupTimeout = errors.New("popup_timeout must be positive")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// SetDefaults registers default values for every optional setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("redirect_uri", DefaultLocalURL)
	v.SetDefault("cache_location", CacheLocationFile)
	v.SetDefault("logout_mode", LogoutModeEndSession)
	v.SetDefault("post_logout_redirect_uri", DefaultLocalURL)
	v.SetDefault("end_session_base_url", DefaultInstanceURL)
	v.SetDefault("local_reload_url", DefaultLocalURL)
	v.SetDefault("local_reload_delay", "30s")
	v.SetDefault("popup_timeout", "10m")
	v.SetDefault("log_level", "info")
}

// LoadConfig loads configuration settings from a YAML file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	SetDefaults(viper.GetViper())
	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	cfg.ClientID = strings.TrimSpace(cfg.ClientID)
	if cfg.ClientID == "" {
		return ErrEmptyClientID
	}

	cfg.TenantID = strings.TrimSpace(cfg.TenantID)
	if cfg.TenantID == "" && cfg.Authority == "" {
		return ErrEmptyTenantID
	}

	cfg.ParsedAuthority = strings.TrimRight(strings.TrimSpace(cfg.Authority), "/")
	if cfg.ParsedAuthority == "" {
		cfg.ParsedAuthority = DefaultInstanceURL + "/" + url.PathEscape(cfg.TenantID) + "/v2.0"
	}

	urls := []struct {
		key   string
		value string
	}{
		{"authority", cfg.ParsedAuthority},
		{"redirect_uri", cfg.RedirectURI},
		{"post_logout_redirect_uri", cfg.PostLogoutRedirectURI},
		{"end_session_base_url", cfg.EndSessionBaseURL},
		{"local_reload_url", cfg.LocalReloadURL},
	}

	for _, u := range urls {
		if err = validateAbsoluteURL(u.value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidURL, u.key, err)
		}
	}

	switch cfg.CacheLocation {
	case CacheLocationMemory:
	case CacheLocationFile:
		cfg.ParsedCacheFile, err = resolveCacheFile(cfg.CacheFile)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownCacheLocation, cfg.CacheLocation)
	}

	switch cfg.LogoutMode {
	case LogoutModeEndSession:
		if cfg.TenantID == "" {
			return fmt.Errorf("%w: required by logout_mode '%s'", ErrEmptyTenantID, cfg.LogoutMode)
		}
	case LogoutModeLocal:
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownLogoutMode, cfg.LogoutMode)
	}

	cfg.ParsedLocalReloadDelay, err = time.ParseDuration(cfg.LocalReloadDelay)
	if err != nil {
		return fmt.Errorf("failed to parse local reload delay: %w", err)
	}

	if cfg.ParsedLocalReloadDelay <= 0 {
		return ErrInvalidLocalReloadDelay
	}

	cfg.ParsedPopupTimeout, err = time.ParseDuration(cfg.PopupTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse popup timeout: %w", err)
	}

	if cfg.ParsedPopupTimeout <= 0 {
		return ErrInvalidPopupTimeout
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	return nil
}

// SaveConfig writes the client registration settings to the configuration file
// while preserving the original format and order of an existing file.
func SaveConfig(configFile string, values map[string]string) error {
	if configFile == "" {
		configFile = DefaultConfigFilename
	}

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, values, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	for key, value := range values {
		setValueInNode(&node, key, value)
	}

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("'%s' is not absolute", raw)
	}

	return nil
}

func resolveCacheFile(cacheFile string) (string, error) {
	if cacheFile = strings.TrimSpace(cacheFile); cacheFile != "" {
		return cacheFile, nil
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}

	return filepath.Join(cacheDir, constants.AppName, defaultCacheFilename), nil
}

// handleMissingConfigFile creates a new config file with defaults if it doesn't exist.
func handleMissingConfigFile(configFile string, values map[string]string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	v := viper.New()
	SetDefaults(v)

	for key, value := range values {
		v.Set(key, value)
	}

	if err = v.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// setValueInNode updates a top-level key in the YAML node tree, appending it when absent.
func setValueInNode(node *yaml.Node, key, value string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		if mapNode.Content[i].Value != key {
			continue
		}

		valueNode := mapNode.Content[i+1]
		valueNode.Value = value

		if valueNode.Style == 0 {
			valueNode.Style = yaml.DoubleQuotedStyle
		}

		return
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: yaml.DoubleQuotedStyle},
	)
}
