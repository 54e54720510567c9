package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxLogLength is the default maximum size (in bytes) of a logged request or response dump.
	DefaultMaxLogLength = 64 * 1024 // 64 KB

	// ClientSKU is reported to the identity provider in the x-client-SKU header.
	ClientSKU = "entra-login.go"
)
