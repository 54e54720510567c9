package http

import (
	"net/http"

	"github.com/oshokin/entra-login/internal/utils"
	"github.com/oshokin/entra-login/internal/version"
)

// NewClient returns the HTTP client used for discovery, key set and token requests.
func NewClient() *http.Client {
	return &http.Client{
		Transport: NewClientInfoInjector(
			NewLogTransport(http.DefaultTransport, 0),
			utils.NewStaticClientInfoProvider(ClientSKU, version.Short())),
		Timeout: DefaultTimeout,
	}
}
