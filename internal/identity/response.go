package identity

import (
	"fmt"
	"net/url"
	"strings"
)

// redirectResponse is the authorization response carried by the redirect URI.
type redirectResponse struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// parseRedirectResponse extracts the authorization response from a URL the browser reached.
// The query is read first; the fragment is used when the query carries no response.
func parseRedirectResponse(rawURL, redirectURI string) (*redirectResponse, error) {
	if !matchesRedirect(rawURL, redirectURI) {
		return nil, fmt.Errorf("%w: %s", ErrNotRedirectResponse, rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redirect response: %w", err)
	}

	params := u.Query()
	if !params.Has("code") && !params.Has("error") && u.Fragment != "" {
		if params, err = url.ParseQuery(u.Fragment); err != nil {
			return nil, fmt.Errorf("failed to parse redirect response fragment: %w", err)
		}
	}

	response := &redirectResponse{
		Code:             params.Get("code"),
		State:            params.Get("state"),
		Error:            params.Get("error"),
		ErrorDescription: params.Get("error_description"),
	}

	if response.Code == "" && response.Error == "" {
		return nil, ErrMissingCode
	}

	return response, nil
}

// matchesRedirect reports whether candidate points at the redirect URI, ignoring query and fragment.
func matchesRedirect(candidate, redirectURI string) bool {
	c, err := url.Parse(candidate)
	if err != nil {
		return false
	}

	r, err := url.Parse(redirectURI)
	if err != nil {
		return false
	}

	return strings.EqualFold(c.Scheme, r.Scheme) &&
		strings.EqualFold(c.Host, r.Host) &&
		strings.TrimSuffix(c.Path, "/") == strings.TrimSuffix(r.Path, "/")
}
