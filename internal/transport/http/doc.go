// Package http provides the HTTP transport used for every identity provider call:
// client identity headers, debug request/response dumps with secrets redacted,
// and a constructor wiring both into an *http.Client.
package http
