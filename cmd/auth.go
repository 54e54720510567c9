package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/entra-login/internal/app"
)

var (
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authentication management commands",
		Long: `Sign in to and out of the Microsoft identity platform.

Use 'auth login' to sign in, 'auth status' to see who is signed in
and 'auth logout' to sign out.`,
		PersistentPreRun: initConfig,
	}

	authLoginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in through the browser",
		Long: `Opens a browser window at the Microsoft sign-in page and waits until you sign in.

The window uses a fresh browser profile and closes itself once the identity
provider redirects back. The account picker is always shown.

With --redirect the default browser is used instead. When it lands on the
redirect URI, copy the full address and pass it to 'auth complete'.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			useRedirect, _ := cmd.Flags().GetBool("redirect")

			app.ExecuteAuthLoginCommand(cmd.Context(), appConfig, useRedirect)
		},
	}

	authCompleteCmd = &cobra.Command{
		Use:   "complete {url}",
		Short: "Finish a redirect sign-in",
		Long: `Finishes a sign-in started with 'auth login --redirect'.

Pass the full address the browser reached, including the query string.
Requires the file cache location.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteAuthCompleteCommand(cmd.Context(), appConfig, args[0])
		},
	}

	authLogoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Sign out the active account",
		Long: `Signs out the active account using the configured logout mode.

end_session: opens the tenant's logout page, which ends the identity provider session.
local:       forgets the active account and reopens the local page after a delay.
             The identity provider session stays alive.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			noWait, _ := cmd.Flags().GetBool("no-wait")

			app.ExecuteAuthLogoutCommand(cmd.Context(), appConfig, !noWait)
		},
	}

	authStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteAuthStatusCommand(cmd.Context(), appConfig)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	authLoginCmd.Flags().Bool(
		"redirect",
		false,
		"sign in through the default browser instead of a dedicated window.")

	authLogoutCmd.Flags().Bool(
		"no-wait",
		false,
		"do not wait for the local page reload after a local sign-out.")

	authCmd.AddCommand(authLoginCmd, authCompleteCmd, authLogoutCmd, authStatusCmd)

	rootCmd.AddCommand(authCmd)
}
