// Package identity provides the OpenID Connect public client used for interactive sign-in
// against the Microsoft identity platform.
//
// The heavy lifting is delegated: discovery and ID token verification to go-oidc,
// the authorization code + PKCE exchange to golang.org/x/oauth2, and the interactive
// sign-in window to go-rod. The package itself keeps the list of known accounts,
// the active account pointer and at most one pending redirect request.
package identity
