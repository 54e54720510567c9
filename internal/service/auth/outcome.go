package auth

import (
	"errors"

	"github.com/oshokin/entra-login/internal/identity"
)

// Outcome classifies the result of a facade operation.
type Outcome int

const (
	// OutcomeSuccess means the operation succeeded.
	OutcomeSuccess Outcome = iota
	// OutcomeInitFailed means the identity client could not be initialized.
	OutcomeInitFailed
	// OutcomeAuthError means the identity provider or the sign-in protocol reported an error.
	OutcomeAuthError
	// OutcomeUnexpected means any other failure.
	OutcomeUnexpected
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInitFailed:
		return "initialization_failed"
	case OutcomeAuthError:
		return "authentication_error"
	case OutcomeUnexpected:
		return "unexpected_error"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by the facade to its outcome.
// Initialization failures take precedence over the errors joined with them.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrInitialization):
		return OutcomeInitFailed
	case identity.IsAuthError(err):
		return OutcomeAuthError
	default:
		return OutcomeUnexpected
	}
}
