package http

import (
	"net/http"
	"runtime"

	"github.com/oshokin/entra-login/internal/utils"
)

const (
	// userAgentHeader is the HTTP header name for User-Agent.
	userAgentHeader = "User-Agent"
	// clientSKUHeader identifies the client library to the identity provider.
	clientSKUHeader = "x-client-SKU"
	// clientVersionHeader carries the client library version.
	clientVersionHeader = "x-client-VER"
	// clientOSHeader carries the operating system the client runs on.
	clientOSHeader = "x-client-OS"
)

// ClientInfoInjector is a custom http.RoundTripper that adds client identity headers to outgoing requests.
// Headers already present on the request are left untouched.
type ClientInfoInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// provider supplies the header values.
	provider utils.ClientInfoProvider
}

// NewClientInfoInjector creates and returns a new instance of ClientInfoInjector.
func NewClientInfoInjector(next http.RoundTripper, provider utils.ClientInfoProvider) http.RoundTripper {
	return &ClientInfoInjector{
		next:     next,
		provider: provider,
	}
}

// RoundTrip executes a single HTTP transaction with the client identity headers set.
// It implements the http.RoundTripper interface.
func (t *ClientInfoInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())

	setIfMissing(req.Header, userAgentHeader, t.provider.GetUserAgent)
	setIfMissing(req.Header, clientSKUHeader, t.provider.GetClientSKU)
	setIfMissing(req.Header, clientVersionHeader, t.provider.GetClientVersion)
	setIfMissing(req.Header, clientOSHeader, func() string { return runtime.GOOS })

	return t.next.RoundTrip(req)
}

func setIfMissing(header http.Header, key string, value func() string) {
	if header.Get(key) == "" {
		header.Set(key, value())
	}
}
