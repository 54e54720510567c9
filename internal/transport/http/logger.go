package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"
	"unicode/utf8"

	"github.com/oshokin/entra-login/internal/logger"
	"github.com/oshokin/entra-login/internal/utils"
)

// LogTransport is a custom http.RoundTripper that logs HTTP requests and responses at debug level.
// Token, code and verifier values are redacted before anything is written.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction against the identity provider.
// Failed statuses are always reported at warn level; full dumps are written only at debug level.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	ctx := logger.WithKV(logger.WithName(req.Context(), "http"),
		"method", req.Method,
		"endpoint", req.URL.Host+req.URL.Path)

	if !logger.IsDebugLevel() {
		resp, err := t.next.RoundTrip(req)
		if err == nil && resp.StatusCode >= http.StatusBadRequest {
			logger.WarnKV(ctx, "Identity provider returned an error status", "status", resp.StatusCode)
		}

		return resp, err
	}

	requestDump := t.dumpRequest(req)
	startedAt := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.DebugKV(ctx, "Request failed",
			"url", utils.RedactSecrets(req.URL.String()),
			"error", err)

		return nil, err
	}

	logger.DebugKV(ctx, "Round trip finished",
		"status", resp.StatusCode,
		"elapsed", time.Since(startedAt),
		"request", requestDump,
		"response", t.dumpResponse(resp))

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	// Include the body only when it is text: token requests are form-encoded.
	dump, err := httputil.DumpRequestOut(req, utils.IsTextContentType(req.Header.Get("Content-Type")))
	if err != nil {
		return err.Error()
	}

	return t.truncate(utils.RedactSecrets(string(dump)))
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	contentType := resp.Header.Get("Content-Type")

	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(contentType))
	if err != nil {
		return err.Error()
	}

	return t.truncate(utils.RedactSecrets(string(dump)))
}

func (t *LogTransport) truncate(data string) string {
	if uint64(len(data)) <= t.maxLogLength {
		return data
	}

	// Cut on a rune boundary so the dump stays valid UTF-8.
	cut := int(t.maxLogLength) //nolint:gosec // Bounded by len(data) above.
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}

	return data[:cut] + "... [truncated]"
}
