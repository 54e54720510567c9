package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/entra-login/internal/identity"
	"github.com/oshokin/entra-login/internal/logger"
)

// StatusResult describes the signed-in state.
type StatusResult struct {
	// Active is the active account, or nil.
	Active *identity.Account
	// KnownAccounts is the number of remembered accounts.
	KnownAccounts int
}

// Login signs the user in through a browser window.
// A failed initialization is logged and the sign-in is attempted anyway;
// its error is then joined with the sign-in error.
func (s *ServiceImpl) Login(ctx context.Context) (*identity.Account, error) {
	initErr := s.initialize(ctx)

	result, err := s.client.LoginPopup(ctx, interactiveRequest())
	if err != nil {
		return nil, errors.Join(initErr, logLoginError(ctx, err))
	}

	if result == nil || result.Account == nil {
		logger.Warn(ctx, "Sign-in completed without an account")

		return nil, nil //nolint:nilnil // The client reported success without an account.
	}

	if err = s.client.SetActiveAccount(result.Account); err != nil {
		return nil, fmt.Errorf("failed to set active account: %w", err)
	}

	logger.Infof(ctx, "Signed in as %s", result.Account.DisplayName())

	return result.Account, nil
}

// LoginRedirect sends the user's browser to the sign-in page. The sign-in is
// finished by CompleteRedirect in a client created with the redirect response.
func (s *ServiceImpl) LoginRedirect(ctx context.Context) error {
	if err := s.initialize(ctx); err != nil {
		return err
	}

	if err := s.client.LoginRedirect(ctx, interactiveRequest()); err != nil {
		return logLoginError(ctx, err)
	}

	logger.Info(ctx, "Continue the sign-in in your browser")

	return nil
}

// CompleteRedirect initializes the client, which redeems the redirect response it
// was created with, and returns the resulting active account.
func (s *ServiceImpl) CompleteRedirect(ctx context.Context) (*identity.Account, error) {
	if err := s.initialize(ctx); err != nil {
		return nil, err
	}

	account := s.client.ActiveAccount()
	if account == nil {
		logger.Warn(ctx, "No account is signed in after completing the redirect")

		return nil, nil //nolint:nilnil // No active account is a valid state.
	}

	logger.Infof(ctx, "Signed in as %s", account.DisplayName())

	return account, nil
}

// Status returns the active account and the number of known accounts.
func (s *ServiceImpl) Status(ctx context.Context) (*StatusResult, error) {
	if err := s.initialize(ctx); err != nil {
		return nil, err
	}

	return &StatusResult{
		Active:        s.client.ActiveAccount(),
		KnownAccounts: len(s.client.AllAccounts()),
	}, nil
}

// logLoginError logs a sign-in failure and wraps errors that are not authentication errors.
func logLoginError(ctx context.Context, err error) error {
	var authErr *identity.AuthError
	if errors.As(err, &authErr) {
		logger.Errorf(ctx, "Authentication error: %s", authErr.Message())

		return err
	}

	logger.Errorf(ctx, "Unexpected error during login: %v", err)

	return fmt.Errorf("%w: %w", ErrUnexpected, err)
}
