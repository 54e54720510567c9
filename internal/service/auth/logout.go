package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/oshokin/entra-login/internal/config"
	"github.com/oshokin/entra-login/internal/identity"
	"github.com/oshokin/entra-login/internal/logger"
	"github.com/oshokin/entra-login/internal/utils"
)

// LogoutAction is what Logout did.
type LogoutAction string

const (
	// LogoutSkipped means there was no active account.
	LogoutSkipped LogoutAction = "skipped"
	// LogoutEndSession means the browser was sent to the end-session URL.
	LogoutEndSession LogoutAction = "end_session"
	// LogoutFallbackRedirect means the identity client signed the account out,
	// because the ID token or login hint was missing.
	LogoutFallbackRedirect LogoutAction = "fallback_redirect"
	// LogoutLocal means the active account was cleared and a page reload was scheduled.
	LogoutLocal LogoutAction = "local"
)

// LogoutResult describes a completed Logout.
type LogoutResult struct {
	// Action is what Logout did.
	Action LogoutAction
	// Account is the account that was signed out, if any.
	Account *identity.Account
	// URL is the page the browser was or will be sent to.
	URL string
	// Reload is the scheduled page reload of a local sign-out.
	Reload Task
}

// Logout signs the active account out with the configured strategy.
// A missing active account is a warning, not an error.
func (s *ServiceImpl) Logout(ctx context.Context) (*LogoutResult, error) {
	if err := s.initialize(ctx); err != nil {
		return nil, err
	}

	account := s.client.ActiveAccount()
	if account == nil {
		logger.Warn(ctx, "No active account to sign out")

		return &LogoutResult{Action: LogoutSkipped}, nil
	}

	switch s.cfg.LogoutMode {
	case config.LogoutModeEndSession:
		return s.endSessionLogout(ctx, account)
	case config.LogoutModeLocal:
		return s.localLogout(ctx, account)
	default:
		return nil, fmt.Errorf("%w: '%s'", config.ErrUnknownLogoutMode, s.cfg.LogoutMode)
	}
}

// endSessionLogout ends the identity provider session by sending the browser to
// the tenant's logout endpoint. The local account is left untouched.
func (s *ServiceImpl) endSessionLogout(ctx context.Context, account *identity.Account) (*LogoutResult, error) {
	idToken := account.IDToken
	loginHint := account.IDTokenClaims.LoginHint

	if idToken == "" || loginHint == "" {
		logger.Warn(ctx, "ID token or login hint is missing, signing out through the identity client")

		err := s.client.LogoutRedirect(ctx, identity.LogoutRequest{
			Account:               account,
			PostLogoutRedirectURI: s.cfg.PostLogoutRedirectURI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to sign out through the identity client: %w", err)
		}

		return &LogoutResult{Action: LogoutFallbackRedirect, Account: account}, nil
	}

	logger.Infof(ctx, "Signing out with login hint %s", utils.MaskSecret(loginHint))

	logoutURL := endSessionURL(s.cfg.EndSessionBaseURL, s.cfg.TenantID, idToken, loginHint, s.cfg.PostLogoutRedirectURI)
	if err := s.navigator.Navigate(ctx, logoutURL); err != nil {
		return nil, fmt.Errorf("failed to open end-session URL: %w", err)
	}

	return &LogoutResult{
		Action:  LogoutEndSession,
		Account: account,
		URL:     logoutURL,
	}, nil
}

// localLogout clears the active account and schedules an unconditional reload of the
// local page. The identity provider session stays alive.
func (s *ServiceImpl) localLogout(ctx context.Context, account *identity.Account) (*LogoutResult, error) {
	if err := s.client.SetActiveAccount(nil); err != nil {
		return nil, fmt.Errorf("failed to clear active account: %w", err)
	}

	logger.Infof(ctx, "Signed out %s", account.DisplayName())

	reloadURL := s.cfg.LocalReloadURL
	delay := s.cfg.ParsedLocalReloadDelay

	logger.Debugf(ctx, "Opening %s in %v", reloadURL, delay)

	// The reload outlives the request that scheduled it.
	reloadCtx := context.WithoutCancel(ctx)

	task := s.scheduler.AfterFunc(delay, func() {
		if err := s.navigator.Navigate(reloadCtx, reloadURL); err != nil {
			logger.Errorf(reloadCtx, "Failed to open %s: %v", reloadURL, err)
		}
	})

	return &LogoutResult{
		Action:  LogoutLocal,
		Account: account,
		URL:     reloadURL,
		Reload:  task,
	}, nil
}

// endSessionURL builds <base>/<tenant>/oauth2/v2.0/logout with percent-encoded hints.
func endSessionURL(baseURL, tenant, idToken, loginHint, postLogoutRedirectURI string) string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/logout?id_token_hint=%s&logout_hint=%s&post_logout_redirect_uri=%s",
		strings.TrimSuffix(baseURL, "/"),
		url.PathEscape(tenant),
		escapeComponent(idToken),
		escapeComponent(loginHint),
		escapeComponent(postLogoutRedirectURI),
	)
}

// escapeComponent percent-encodes a query value, spaces included.
func escapeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
