package utils

//go:generate $MOCKGEN -source=client_info_provider.go -destination=mocks/client_info_provider_mock.go

// ClientInfoProvider describes the client library identity sent to the identity provider.
type ClientInfoProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
	// GetClientSKU returns the client SKU reported in the x-client-SKU header.
	GetClientSKU() string
	// GetClientVersion returns the client version reported in the x-client-VER header.
	GetClientVersion() string
}

// StaticClientInfoProvider returns values fixed at construction time.
type StaticClientInfoProvider struct {
	// sku is the client SKU, for example "entra-login.go".
	sku string
	// version is the client version.
	version string
}

// NewStaticClientInfoProvider creates and returns a new instance of StaticClientInfoProvider.
func NewStaticClientInfoProvider(sku, version string) ClientInfoProvider {
	return &StaticClientInfoProvider{sku: sku, version: version}
}

// GetUserAgent returns "<sku>/<version>".
func (p *StaticClientInfoProvider) GetUserAgent() string {
	return p.sku + "/" + p.version
}

// GetClientSKU returns the client SKU.
func (p *StaticClientInfoProvider) GetClientSKU() string {
	return p.sku
}

// GetClientVersion returns the client version.
func (p *StaticClientInfoProvider) GetClientVersion() string {
	return p.version
}
