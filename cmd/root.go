package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/entra-login/internal/config"
	"github.com/oshokin/entra-login/internal/logger"
	"github.com/oshokin/entra-login/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "entra-login",
		Short: "Sign in to the Microsoft identity platform from the command line.",
		Long: `Entra Login is a CLI OpenID Connect public client for the Microsoft identity platform.
It supports:
- Signing in through a dedicated browser window
- Signing in through a redirect of the default browser
- Signing out by ending the identity provider session, or locally

Run 'entra-login config init --client-id <id> --tenant-id <tenant>' to get started.`,
		Version: version.Full(),
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmdFlags := rootCmd.PersistentFlags()

	rootCmdFlags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags.String(
		"client-id",
		"",
		"application (client) ID of the app registration.")

	rootCmdFlags.StringP(
		"tenant-id",
		"t",
		"",
		"directory (tenant) ID, or one of: common, organizations, consumers.")

	rootCmdFlags.String(
		"cache-location",
		"",
		"where accounts are remembered: memory, file.")

	rootCmdFlags.String(
		"logout-mode",
		"",
		"logout strategy: end_session (end the identity provider session), local (forget the account locally).")

	rootCmdFlags.String(
		"log-level",
		"",
		"log level: debug, info, warn, error.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("client-id"); flag != nil && flag.Changed {
		cfg.ClientID, _ = flags.GetString("client-id")
	}

	if flag := flags.Lookup("tenant-id"); flag != nil && flag.Changed {
		cfg.TenantID, _ = flags.GetString("tenant-id")
	}

	if flag := flags.Lookup("cache-location"); flag != nil && flag.Changed {
		cfg.CacheLocation, _ = flags.GetString("cache-location")
	}

	if flag := flags.Lookup("logout-mode"); flag != nil && flag.Changed {
		cfg.LogoutMode, _ = flags.GetString("logout-mode")
	}

	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	return config.ValidateConfig(cfg)
}

// changedFlagValues returns the values of the changed flags keyed by their configuration key.
func changedFlagValues(flags *pflag.FlagSet) map[string]string {
	keys := map[string]string{
		"client-id":      "client_id",
		"tenant-id":      "tenant_id",
		"cache-location": "cache_location",
		"logout-mode":    "logout_mode",
		"log-level":      "log_level",
	}

	values := make(map[string]string, len(keys))

	for flagName, key := range keys {
		if flag := flags.Lookup(flagName); flag != nil && flag.Changed {
			values[key] = flag.Value.String()
		}
	}

	return values
}
