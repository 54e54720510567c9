// Package utils provides small helpers shared across the application:
// content type checks and secret redaction for debug logs,
// generic slice helpers, and the client identity reported to the identity provider.
package utils
