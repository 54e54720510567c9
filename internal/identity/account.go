package identity

import (
	"net/url"
	"time"
)

// Interaction prompts accepted by the authorize endpoint.
const (
	// PromptSelectAccount forces the account picker.
	PromptSelectAccount = "select_account"
	// PromptLogin forces credential entry.
	PromptLogin = "login"
	// PromptNone forbids any interaction.
	PromptNone = "none"
)

// IDTokenClaims holds the ID token claims the application uses.
type IDTokenClaims struct {
	// Subject is the "sub" claim.
	Subject string `json:"sub" yaml:"sub"`
	// ObjectID is the "oid" claim, the user's object ID in the tenant.
	ObjectID string `json:"oid,omitempty" yaml:"oid,omitempty"`
	// TenantID is the "tid" claim.
	TenantID string `json:"tid,omitempty" yaml:"tid,omitempty"`
	// Name is the "name" claim.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// PreferredUsername is the "preferred_username" claim.
	PreferredUsername string `json:"preferred_username,omitempty" yaml:"preferred_username,omitempty"`
	// LoginHint is the optional "login_hint" claim, usable as logout_hint.
	LoginHint string `json:"login_hint,omitempty" yaml:"login_hint,omitempty"`
	// SessionID is the optional "sid" claim.
	SessionID string `json:"sid,omitempty" yaml:"sid,omitempty"`
	// Nonce is the "nonce" claim; it is checked on sign-in and never stored.
	Nonce string `json:"nonce,omitempty" yaml:"-"`
}

// Account is a signed-in user known to the client.
type Account struct {
	// HomeAccountID uniquely identifies the account: "<oid>.<tid>", or the subject.
	HomeAccountID string `yaml:"home_account_id"`
	// Environment is the identity provider host, e.g. "login.microsoftonline.com".
	Environment string `yaml:"environment"`
	// TenantID is the tenant the account signed in to.
	TenantID string `yaml:"tenant_id,omitempty"`
	// LocalAccountID is the object ID of the account in its tenant.
	LocalAccountID string `yaml:"local_account_id,omitempty"`
	// Username is the preferred username, usually a UPN or email.
	Username string `yaml:"username,omitempty"`
	// Name is the display name.
	Name string `yaml:"name,omitempty"`
	// IDToken is the raw ID token of the most recent sign-in.
	IDToken string `yaml:"id_token,omitempty"`
	// IDTokenClaims are the verified claims of IDToken.
	IDTokenClaims IDTokenClaims `yaml:"id_token_claims"`
	// SignedInAt is the time of the most recent sign-in.
	SignedInAt time.Time `yaml:"signed_in_at"`
}

// AuthenticationResult is the outcome of a successful sign-in.
type AuthenticationResult struct {
	// Account is the signed-in account.
	Account *Account
	// IDToken is the raw ID token.
	IDToken string
	// AccessToken is the access token for the requested scopes. It is never cached.
	AccessToken string
	// Scopes are the scopes the access token was issued for.
	Scopes []string
	// ExpiresOn is the access token expiry.
	ExpiresOn time.Time
}

// InteractiveRequest describes an interactive sign-in.
type InteractiveRequest struct {
	// Scopes are the requested scopes.
	Scopes []string
	// Prompt is the prompt parameter, e.g. PromptSelectAccount. Empty omits it.
	Prompt string
	// LoginHint pre-fills the username. Empty omits it.
	LoginHint string
}

// LogoutRequest describes a sign-out through the identity provider's end-session endpoint.
type LogoutRequest struct {
	// Account is the account to sign out.
	Account *Account
	// PostLogoutRedirectURI is where the identity provider sends the browser afterwards.
	PostLogoutRedirectURI string
}

// newAccount builds an account from verified ID token claims.
func newAccount(issuer, rawIDToken string, claims IDTokenClaims, signedInAt time.Time) *Account {
	homeAccountID := claims.Subject
	if claims.ObjectID != "" && claims.TenantID != "" {
		homeAccountID = claims.ObjectID + "." + claims.TenantID
	}

	var environment string
	if u, err := url.Parse(issuer); err == nil {
		environment = u.Host
	}

	claims.Nonce = ""

	return &Account{
		HomeAccountID:  homeAccountID,
		Environment:    environment,
		TenantID:       claims.TenantID,
		LocalAccountID: claims.ObjectID,
		Username:       claims.PreferredUsername,
		Name:           claims.Name,
		IDToken:        rawIDToken,
		IDTokenClaims:  claims,
		SignedInAt:     signedInAt,
	}
}

// DisplayName returns the best human-readable identifier of the account.
func (a *Account) DisplayName() string {
	switch {
	case a.Username != "":
		return a.Username
	case a.Name != "":
		return a.Name
	default:
		return a.HomeAccountID
	}
}
