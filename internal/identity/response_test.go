package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRedirectResponse tests the parseRedirectResponse function.
func TestParseRedirectResponse(t *testing.T) {
	t.Parallel()

	const redirectURI = "http://localhost:4200"

	tests := []struct {
		name        string
		url         string
		expected    *redirectResponse
		expectedErr error
	}{
		{
			name:     "code in query",
			url:      "http://localhost:4200/?code=abc&state=xyz",
			expected: &redirectResponse{Code: "abc", State: "xyz"},
		},
		{
			name:     "code in fragment",
			url:      "http://localhost:4200/#code=abc&state=xyz",
			expected: &redirectResponse{Code: "abc", State: "xyz"},
		},
		{
			name: "error response",
			url:  "http://localhost:4200?error=access_denied&error_description=User+declined&state=xyz",
			expected: &redirectResponse{
				State:            "xyz",
				Error:            "access_denied",
				ErrorDescription: "User declined",
			},
		},
		{
			name:        "no code",
			url:         "http://localhost:4200/?state=xyz",
			expectedErr: ErrMissingCode,
		},
		{
			name:        "different host",
			url:         "https://evil.example.com/?code=abc",
			expectedErr: ErrNotRedirectResponse,
		},
		{
			name:        "different path",
			url:         "http://localhost:4200/other?code=abc",
			expectedErr: ErrNotRedirectResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			response, err := parseRedirectResponse(tt.url, redirectURI)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, response)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, response)
		})
	}
}

// TestMatchesRedirect tests the matchesRedirect function.
func TestMatchesRedirect(t *testing.T) {
	t.Parallel()

	assert.True(t, matchesRedirect("HTTP://LOCALHOST:4200/?code=1", "http://localhost:4200"))
	assert.True(t, matchesRedirect("http://localhost:4200/auth/callback?x=1", "http://localhost:4200/auth/callback/"))
	assert.False(t, matchesRedirect("http://localhost:4201/", "http://localhost:4200"))
	assert.False(t, matchesRedirect("https://localhost:4200/", "http://localhost:4200"))
	assert.False(t, matchesRedirect("://bad", "http://localhost:4200"))
}
