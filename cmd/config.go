package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/entra-login/internal/app"
	"github.com/oshokin/entra-login/internal/logger"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the app registration to the configuration file",
		Long: `Writes the settings given by flags to the configuration file.

An existing file keeps its other settings, comments and order.
A new file is created with every default filled in.`,
		Example: "entra-login config init --client-id 11111111-2222-3333-4444-555555555555 --tenant-id contoso.onmicrosoft.com",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			values := changedFlagValues(cmd.Flags())
			if values["client_id"] == "" {
				logger.Fatal(cmd.Context(), "--client-id is required")
			}

			app.ExecuteConfigInitCommand(cmd.Context(), configFilenameFromFlag, values)
		},
	}

	configShowCmd = &cobra.Command{
		Use:              "show",
		Short:            "Print the effective configuration",
		Args:             cobra.NoArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteConfigShowCommand(cmd.Context(), appConfig, cmd.OutOrStdout())
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(configCmd)
}
