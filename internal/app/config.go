package app

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/entra-login/internal/config"
	"github.com/oshokin/entra-login/internal/logger"
)

// ExecuteConfigInitCommand executes the config init command.
// It writes the client registration to the configuration file, keeping any other settings.
func ExecuteConfigInitCommand(ctx context.Context, configFile string, values map[string]string) {
	if err := config.SaveConfig(configFile, values); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
		return
	}

	if configFile == "" {
		configFile = config.DefaultConfigFilename
	}

	logger.Infof(ctx, "Configuration saved to %s", configFile)
	logger.Info(ctx, "Sign in with: entra-login auth login")
}

// ExecuteConfigShowCommand executes the config show command.
// It prints the effective configuration, flags applied, as YAML.
func ExecuteConfigShowCommand(ctx context.Context, cfg *config.Config, w io.Writer) {
	content, err := yaml.Marshal(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to marshal configuration: %v", err)
		return
	}

	if _, err = fmt.Fprint(w, string(content)); err != nil {
		logger.Fatalf(ctx, "Failed to print configuration: %v", err)
	}
}
