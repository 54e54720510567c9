package utils

import (
	"mime"
	"regexp"
	"strconv"
	"strings"
)

// redactedValue replaces secret values in logged text.
const redactedValue = "[REDACTED]"

// minMaskedSecretLength is the shortest secret that keeps a visible prefix when masked.
const minMaskedSecretLength = 12

// maskedSecretPrefixLength is the number of leading characters kept by MaskSecret.
const maskedSecretPrefixLength = 6

var (
	// textContentTypePatterns is a slice of regular expressions that match content types
	// considered to be text-based. This includes "text/*", "application/json",
	// "application/jwk-set+json" and form-encoded bodies used by token requests.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile("^application/json$"),
		regexp.MustCompile(`^application/jwk-set\+json$`),
		regexp.MustCompile("^application/x-www-form-urlencoded$"),
	}

	// secretFieldNames lists protocol fields whose values must never reach the logs.
	//nolint:gochecknoglobals // Immutable list used as a constant.
	secretFieldNames = []string{
		"access_token",
		"refresh_token",
		"id_token",
		"id_token_hint",
		"code",
		"code_verifier",
		"client_secret",
	}

	// jsonSecretPattern matches "field": "value" pairs of secret fields in JSON bodies.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	jsonSecretPattern = regexp.MustCompile(`("(?:` + strings.Join(secretFieldNames, "|") + `)"\s*:\s*")[^"]*(")`)

	// formSecretPattern matches field=value pairs of secret fields in query strings and form bodies.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	formSecretPattern = regexp.MustCompile(`(^|[?&\s])((?:` + strings.Join(secretFieldNames, "|") + `)=)[^&\s]*`)
)

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// RedactSecrets hides token, code and verifier values in JSON, form and query text.
func RedactSecrets(text string) string {
	text = jsonSecretPattern.ReplaceAllString(text, "${1}"+redactedValue+"${2}")

	return formSecretPattern.ReplaceAllString(text, "${1}${2}"+redactedValue)
}

// MaskSecret keeps a short prefix of a secret and hides the rest, so that log lines
// can still tell two values apart.
func MaskSecret(secret string) string {
	if len(secret) < minMaskedSecretLength {
		return strings.Repeat("*", len(secret))
	}

	return secret[:maskedSecretPrefixLength] + "...(" + strconv.Itoa(len(secret)) + " chars)"
}
