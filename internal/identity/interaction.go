package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/oshokin/entra-login/internal/logger"
)

// LoginPopup signs the user in through a dedicated browser window.
func (c *ClientImpl) LoginPopup(ctx context.Context, request InteractiveRequest) (*AuthenticationResult, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}

	pending := c.newPendingRequest(request.Scopes)

	responseURL, err := c.popup.Open(ctx, c.authCodeURL(pending, request), c.cfg.RedirectURI)
	if err != nil {
		return nil, err
	}

	response, err := parseRedirectResponse(responseURL, c.cfg.RedirectURI)
	if err != nil {
		return nil, err
	}

	return c.redeem(ctx, response, pending)
}

// LoginRedirect remembers the request and sends the user's browser to the authorize endpoint.
func (c *ClientImpl) LoginRedirect(ctx context.Context, request InteractiveRequest) error {
	if err := c.ensureInitialized(); err != nil {
		return err
	}

	if !c.cache.Persistent() {
		return ErrRedirectNeedsPersistentCache
	}

	pending := c.newPendingRequest(request.Scopes)
	if err := c.cache.SetPending(pending); err != nil {
		return fmt.Errorf("failed to store pending request: %w", err)
	}

	return c.navigator.Navigate(ctx, c.authCodeURL(pending, request))
}

// LogoutRedirect forgets the account and sends the user's browser to the end-session endpoint.
// The account is forgotten even when the provider publishes no end-session endpoint.
func (c *ClientImpl) LogoutRedirect(ctx context.Context, request LogoutRequest) error {
	if err := c.ensureInitialized(); err != nil {
		return err
	}

	account := request.Account
	if account == nil {
		return ErrNilAccount
	}

	if err := c.cache.Remove(account.HomeAccountID); err != nil {
		return fmt.Errorf("failed to remove account: %w", err)
	}

	if c.endSessionEndpoint == "" {
		return ErrEndSessionNotSupported
	}

	endSessionURL, err := url.Parse(c.endSessionEndpoint)
	if err != nil {
		return fmt.Errorf("failed to parse end_session_endpoint: %w", err)
	}

	postLogoutRedirectURI := request.PostLogoutRedirectURI
	if postLogoutRedirectURI == "" {
		postLogoutRedirectURI = c.cfg.PostLogoutRedirectURI
	}

	query := endSessionURL.Query()
	query.Set("client_id", c.cfg.ClientID)
	query.Set("post_logout_redirect_uri", postLogoutRedirectURI)

	if account.IDToken != "" {
		query.Set("id_token_hint", account.IDToken)
	}

	if account.IDTokenClaims.LoginHint != "" {
		query.Set("logout_hint", account.IDTokenClaims.LoginHint)
	}

	endSessionURL.RawQuery = query.Encode()

	return c.navigator.Navigate(ctx, endSessionURL.String())
}

// redeem exchanges the authorization code, verifies the ID token and remembers the account.
func (c *ClientImpl) redeem(
	ctx context.Context,
	response *redirectResponse,
	pending *PendingRequest,
) (*AuthenticationResult, error) {
	if response.Error != "" {
		return nil, newAuthError(response.Error, response.ErrorDescription)
	}

	if response.State != pending.State {
		return nil, newAuthError(ErrorCodeStateMismatch, "response state does not match the request")
	}

	if response.Code == "" {
		return nil, ErrMissingCode
	}

	ctx = oidc.ClientContext(ctx, c.httpClient)

	token, err := c.oauth2Config.Exchange(ctx, response.Code, oauth2.VerifierOption(pending.CodeVerifier))
	if err != nil {
		return nil, fmt.Errorf("failed to redeem authorization code: %w", asAuthError(err))
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	if rawIDToken == "" {
		return nil, newAuthError(ErrorCodeNoTokensFound, "token response carries no id_token")
	}

	idToken, err := c.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, &AuthError{Code: ErrorCodeInvalidIDToken, Description: err.Error(), Err: err}
	}

	var claims IDTokenClaims
	if err = idToken.Claims(&claims); err != nil {
		return nil, &AuthError{Code: ErrorCodeInvalidIDToken, Description: err.Error(), Err: err}
	}

	if claims.Nonce != pending.Nonce {
		return nil, newAuthError(ErrorCodeNonceMismatch, "ID token nonce does not match the request")
	}

	account := newAccount(idToken.Issuer, rawIDToken, claims, c.now())
	if err = c.cache.Put(account); err != nil {
		return nil, fmt.Errorf("failed to remember account: %w", err)
	}

	logger.Debugf(ctx, "Signed in %s (%s)", account.DisplayName(), account.HomeAccountID)

	return &AuthenticationResult{
		Account:     account,
		IDToken:     rawIDToken,
		AccessToken: token.AccessToken,
		Scopes:      pending.Scopes,
		ExpiresOn:   token.Expiry,
	}, nil
}

func (c *ClientImpl) newPendingRequest(scopes []string) *PendingRequest {
	if !slices.Contains(scopes, oidc.ScopeOpenID) {
		scopes = append([]string{oidc.ScopeOpenID}, scopes...)
	}

	return &PendingRequest{
		State:        uuid.NewString(),
		Nonce:        uuid.NewString(),
		CodeVerifier: oauth2.GenerateVerifier(),
		Scopes:       scopes,
		CreatedAt:    c.now(),
	}
}

func (c *ClientImpl) authCodeURL(pending *PendingRequest, request InteractiveRequest) string {
	cfg := c.oauth2Config
	cfg.Scopes = pending.Scopes

	opts := []oauth2.AuthCodeOption{
		oauth2.S256ChallengeOption(pending.CodeVerifier),
		oidc.Nonce(pending.Nonce),
		oauth2.SetAuthURLParam("response_mode", "query"),
	}

	if request.Prompt != "" {
		opts = append(opts, oauth2.SetAuthURLParam("prompt", request.Prompt))
	}

	if request.LoginHint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("login_hint", request.LoginHint))
	}

	return cfg.AuthCodeURL(pending.State, opts...)
}

// IsAuthError reports whether err is, or wraps, an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError

	return errors.As(err, &authErr)
}
