package http

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/entra-login/internal/utils"
	mock_utils "github.com/oshokin/entra-login/internal/utils/mocks"
)

// TestNewClientInfoInjector tests the NewClientInfoInjector function.
func TestNewClientInfoInjector(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockProvider := mock_utils.NewMockClientInfoProvider(ctrl)

	injector := NewClientInfoInjector(http.DefaultTransport, mockProvider)

	assert.NotNil(t, injector)
	assert.Implements(t, (*http.RoundTripper)(nil), injector)
}

// TestClientInfoInjector_RoundTrip_SetsHeaders tests that missing headers are filled in.
func TestClientInfoInjector_RoundTrip_SetsHeaders(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockProvider := mock_utils.NewMockClientInfoProvider(ctrl)
	mockProvider.EXPECT().GetUserAgent().Return("entra-login.go/1.2.3").Times(1)
	mockProvider.EXPECT().GetClientSKU().Return("entra-login.go").Times(1)
	mockProvider.EXPECT().GetClientVersion().Return("1.2.3").Times(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "entra-login.go/1.2.3", r.Header.Get("User-Agent"))
		assert.Equal(t, "entra-login.go", r.Header.Get("x-client-SKU"))
		assert.Equal(t, "1.2.3", r.Header.Get("x-client-VER"))
		assert.Equal(t, runtime.GOOS, r.Header.Get("x-client-OS"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewClientInfoInjector(http.DefaultTransport, mockProvider)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, req.Header.Get("User-Agent"), "the caller's request must not be modified")
}

// TestClientInfoInjector_RoundTrip_KeepsExistingHeaders tests that present headers are not overwritten.
func TestClientInfoInjector_RoundTrip_KeepsExistingHeaders(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockProvider := mock_utils.NewMockClientInfoProvider(ctrl)
	mockProvider.EXPECT().GetClientVersion().Return("1.2.3").Times(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ExistingAgent/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "custom-sku", r.Header.Get("x-client-SKU"))
		assert.Equal(t, "1.2.3", r.Header.Get("x-client-VER"))
		assert.Equal(t, "plan9", r.Header.Get("x-client-OS"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewClientInfoInjector(http.DefaultTransport, mockProvider)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)
	req.Header.Set("User-Agent", "ExistingAgent/1.0")
	req.Header.Set("x-client-SKU", "custom-sku")
	req.Header.Set("x-client-OS", "plan9")

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestClientInfoInjector_RoundTrip_NilRequest tests that a nil request is rejected.
func TestClientInfoInjector_RoundTrip_NilRequest(t *testing.T) {
	t.Parallel()

	injector := NewClientInfoInjector(http.DefaultTransport, utils.NewStaticClientInfoProvider("sku", "1"))

	resp, err := injector.RoundTrip(nil) //nolint:bodyclose // Body is empty on error.
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

// TestClientInfoInjector_RoundTrip_ErrorHandling tests error handling in RoundTrip.
func TestClientInfoInjector_RoundTrip_ErrorHandling(t *testing.T) {
	t.Parallel()

	injector := NewClientInfoInjector(http.DefaultTransport, utils.NewStaticClientInfoProvider("sku", "1"))

	// Create request with invalid URL that will definitely fail.
	req, err := http.NewRequest(http.MethodGet, "http://[::1]:0", nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.Error(t, err)
	assert.Nil(t, resp)
}

// TestNewClient tests that NewClient wires the transport chain.
func TestNewClient(t *testing.T) {
	t.Parallel()

	client := NewClient()

	require.NotNil(t, client)
	assert.Equal(t, DefaultTimeout, client.Timeout)
	assert.IsType(t, &ClientInfoInjector{}, client.Transport)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ClientSKU, r.Header.Get("x-client-SKU"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
