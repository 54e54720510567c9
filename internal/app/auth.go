package app

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/entra-login/internal/config"
	"github.com/oshokin/entra-login/internal/identity"
	"github.com/oshokin/entra-login/internal/logger"
	"github.com/oshokin/entra-login/internal/service/auth"
	"github.com/oshokin/entra-login/internal/utils"
)

// newAuthService creates the sign-in facade over a fresh identity client.
func newAuthService(cfg *config.Config, opts ...identity.Option) (*auth.ServiceImpl, error) {
	navigator := identity.NewSystemNavigator()

	opts = append([]identity.Option{identity.WithNavigator(navigator)}, opts...)

	client, err := identity.NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return auth.NewService(cfg, client, navigator, auth.NewTimerScheduler()), nil
}

// ExecuteAuthLoginCommand executes the auth login command.
// It signs the user in through a browser window, or starts a redirect sign-in
// that is finished by the auth complete command.
func ExecuteAuthLoginCommand(ctx context.Context, cfg *config.Config, useRedirect bool) {
	authService, err := newAuthService(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize authentication service: %v", err)
		return
	}

	if useRedirect {
		if err = authService.LoginRedirect(ctx); err != nil {
			logger.Fatalf(ctx, "Sign-in failed (%s): %v", auth.Classify(err), err)
			return
		}

		logger.Infof(ctx, "When the browser lands on %s, run:", cfg.RedirectURI)
		logger.Info(ctx, "entra-login auth complete '<the full address from the browser>'")

		return
	}

	logger.Info(ctx, "Starting sign-in")

	account, err := authService.Login(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Sign-in failed (%s): %v", auth.Classify(err), err)
		return
	}

	if account == nil {
		logger.Warn(ctx, "Sign-in finished without an account")
		return
	}

	logAccount(ctx, account)
}

// ExecuteAuthCompleteCommand executes the auth complete command.
// It redeems the redirect response the browser reached after auth login --redirect.
func ExecuteAuthCompleteCommand(ctx context.Context, cfg *config.Config, responseURL string) {
	authService, err := newAuthService(cfg, identity.WithRedirectResponse(responseURL))
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize authentication service: %v", err)
		return
	}

	account, err := authService.CompleteRedirect(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Sign-in failed (%s): %v", auth.Classify(err), err)
		return
	}

	if account != nil {
		logAccount(ctx, account)
	}
}

// ExecuteAuthLogoutCommand executes the auth logout command.
// With a local sign-out it waits for the scheduled page reload unless wait is false.
func ExecuteAuthLogoutCommand(ctx context.Context, cfg *config.Config, wait bool) {
	authService, err := newAuthService(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize authentication service: %v", err)
		return
	}

	result, err := authService.Logout(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Sign-out failed: %v", err)
		return
	}

	switch result.Action {
	case auth.LogoutSkipped:
		return
	case auth.LogoutEndSession, auth.LogoutFallbackRedirect:
		logger.Info(ctx, "Finish the sign-out in your browser")
	case auth.LogoutLocal:
		waitForReload(ctx, result, cfg.ParsedLocalReloadDelay, wait)
	}
}

// ExecuteAuthStatusCommand executes the auth status command.
func ExecuteAuthStatusCommand(ctx context.Context, cfg *config.Config) {
	authService, err := newAuthService(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize authentication service: %v", err)
		return
	}

	status, err := authService.Status(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read sign-in status: %v", err)
		return
	}

	if status.Active == nil {
		logger.Infof(ctx, "Not signed in (%d known account(s))", status.KnownAccounts)
		return
	}

	logAccount(ctx, status.Active)
	logger.Infof(ctx, "Known accounts: %d", status.KnownAccounts)
}

func waitForReload(ctx context.Context, result *auth.LogoutResult, delay time.Duration, wait bool) {
	if result.Reload == nil {
		return
	}

	if !wait {
		// The process is about to exit, so the reload would never run.
		result.Reload.Stop()
		logger.Infof(ctx, "Skipped opening %s", result.URL)

		return
	}

	now := time.Now()
	logger.Infof(ctx, "Opening %s %s (Ctrl+C to skip)",
		result.URL, humanize.RelTime(now, now.Add(delay), "ago", "from now"))

	select {
	case <-result.Reload.Done():
	case <-ctx.Done():
		result.Reload.Stop()
	}
}

func logAccount(ctx context.Context, account *identity.Account) {
	logger.Infof(ctx, "Signed in as %s, %s", account.DisplayName(), humanize.Time(account.SignedInAt))
	logger.DebugKV(ctx, "Account",
		"home_account_id", utils.MaskSecret(account.HomeAccountID),
		"environment", account.Environment,
		"tenant_id", account.TenantID,
		"name", account.Name,
	)
}
