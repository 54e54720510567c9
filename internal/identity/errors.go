package identity

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// Error codes reported by AuthError for failures detected on the client side.
const (
	// ErrorCodeUninitialized is reported when an interactive call is made before Initialize succeeded.
	ErrorCodeUninitialized = "uninitialized_public_client_application"
	// ErrorCodeUserCancelled is reported when the sign-in window is closed before it completes.
	ErrorCodeUserCancelled = "user_cancelled"
	// ErrorCodePopupTimeout is reported when the sign-in window does not complete in time.
	ErrorCodePopupTimeout = "popup_timeout"
	// ErrorCodeStateMismatch is reported when a response does not belong to the request that was sent.
	ErrorCodeStateMismatch = "state_mismatch"
	// ErrorCodeNonceMismatch is reported when the ID token nonce does not match the request.
	ErrorCodeNonceMismatch = "nonce_mismatch"
	// ErrorCodeNoTokensFound is reported when the token response carries no ID token.
	ErrorCodeNoTokensFound = "no_tokens_found"
	// ErrorCodeInvalidIDToken is reported when the ID token fails verification.
	ErrorCodeInvalidIDToken = "invalid_id_token"
)

// Static error definitions for better error handling.
var (
	// ErrNoPendingRequest indicates that a redirect response arrived without a matching pending request.
	ErrNoPendingRequest = errors.New("no pending redirect request")
	// ErrMissingCode indicates that a redirect response carries neither a code nor an error.
	ErrMissingCode = errors.New("redirect response carries no authorization code")
	// ErrNotRedirectResponse indicates that a URL does not point at the configured redirect URI.
	ErrNotRedirectResponse = errors.New("URL is not a response to the configured redirect URI")
	// ErrEndSessionNotSupported indicates that discovery published no end_session_endpoint.
	ErrEndSessionNotSupported = errors.New("identity provider does not publish an end_session_endpoint")
	// ErrRedirectNeedsPersistentCache indicates that a redirect sign-in was started with a memory cache.
	ErrRedirectNeedsPersistentCache = errors.New("redirect sign-in requires the file cache location")
	// ErrNilAccount indicates that an account argument is nil.
	ErrNilAccount = errors.New("account is nil")
)

// AuthError is an error reported by the identity provider or by the sign-in protocol handling.
// Callers use errors.As to tell it apart from transport and programming errors.
type AuthError struct {
	// Code is the OAuth 2.0 error code, e.g. "access_denied" or "invalid_grant".
	Code string
	// Description is the human-readable error description, if any.
	Description string
	// Err is the underlying error, if any.
	Err error
}

func newAuthError(code, description string) *AuthError {
	return &AuthError{Code: code, Description: description}
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Description == "" {
		return "authentication error: " + e.Code
	}

	return fmt.Sprintf("authentication error: %s: %s", e.Code, e.Description)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Message returns the human-readable message of the error.
func (e *AuthError) Message() string {
	if e.Description != "" {
		return e.Description
	}

	return e.Code
}

// asAuthError converts token endpoint errors into AuthError and leaves other errors unchanged.
func asAuthError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode != "" {
		return &AuthError{
			Code:        retrieveErr.ErrorCode,
			Description: retrieveErr.ErrorDescription,
			Err:         err,
		}
	}

	return err
}
