package auth

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/oshokin/entra-login/internal/config"
	"github.com/oshokin/entra-login/internal/identity"
	"github.com/oshokin/entra-login/internal/logger"
)

// initializeKey is the singleflight key of the shared initialization task.
const initializeKey = "initialize"

// loginScopes are requested on every interactive sign-in.
var loginScopes = []string{"openid", "profile", "User.Read"}

var (
	// ErrInitialization is returned when the identity client could not be initialized.
	ErrInitialization = errors.New("identity client initialization failed")

	// ErrUnexpected is returned for sign-in failures that are not authentication errors.
	ErrUnexpected = errors.New("unexpected error during login")
)

// Service signs users in and out through the browser.
type Service interface {
	// Login signs the user in through a browser window and makes the account active.
	Login(ctx context.Context) (*identity.Account, error)
	// LoginRedirect sends the user's browser to the sign-in page.
	LoginRedirect(ctx context.Context) error
	// CompleteRedirect finishes a redirect sign-in and returns the active account.
	CompleteRedirect(ctx context.Context) (*identity.Account, error)
	// Logout signs the active account out with the configured strategy.
	Logout(ctx context.Context) (*LogoutResult, error)
	// Status returns the active account and the number of known accounts.
	Status(ctx context.Context) (*StatusResult, error)
}

// ServiceImpl is the facade over an identity client.
type ServiceImpl struct {
	cfg       *config.Config
	client    identity.Client
	navigator identity.Navigator
	scheduler Scheduler

	// initialized is set once initialization has succeeded.
	initialized atomic.Bool
	// initGroup lets concurrent first callers share one initialization.
	initGroup singleflight.Group
}

// NewService creates the facade. The client is not initialized until the first operation.
func NewService(
	cfg *config.Config,
	client identity.Client,
	navigator identity.Navigator,
	scheduler Scheduler,
) *ServiceImpl {
	return &ServiceImpl{
		cfg:       cfg,
		client:    client,
		navigator: navigator,
		scheduler: scheduler,
	}
}

// initialize runs the shared initialization task unless it has already succeeded.
// A failed task is not remembered, so the next call tries again.
// The task does not inherit the cancellation of the caller that started it;
// each caller stops waiting when its own context is done.
func (s *ServiceImpl) initialize(ctx context.Context) error {
	if s.initialized.Load() {
		return nil
	}

	taskCtx := context.WithoutCancel(ctx)

	resultCh := s.initGroup.DoChan(initializeKey, func() (any, error) {
		if s.initialized.Load() {
			return nil, nil
		}

		if err := s.initializeClient(taskCtx); err != nil {
			logger.Errorf(taskCtx, "Identity client initialization failed: %v", err)

			return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
		}

		s.initialized.Store(true)

		return nil, nil
	})

	select {
	case result := <-resultCh:
		return result.Err
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrInitialization, context.Cause(ctx))
	}
}

// initializeClient initializes the client and picks the active account:
// the account of a completed redirect, otherwise the first known account.
func (s *ServiceImpl) initializeClient(ctx context.Context) error {
	if err := s.client.Initialize(ctx); err != nil {
		return err
	}

	result, err := s.client.HandleRedirect(ctx)
	if err != nil {
		return fmt.Errorf("failed to handle redirect response: %w", err)
	}

	if result != nil && result.Account != nil {
		logger.Debugf(ctx, "Redirect sign-in completed for %s", result.Account.DisplayName())

		return s.client.SetActiveAccount(result.Account)
	}

	accounts := s.client.AllAccounts()
	if len(accounts) == 0 {
		logger.Debug(ctx, "No known accounts")

		return nil
	}

	return s.client.SetActiveAccount(accounts[0])
}

func interactiveRequest() identity.InteractiveRequest {
	return identity.InteractiveRequest{
		Scopes: append([]string(nil), loginScopes...),
		Prompt: identity.PromptSelectAccount,
	}
}
