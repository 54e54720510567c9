// Package logger wraps a zap console logger that writes to stderr, keeping
// stdout free for command output such as `config show`.
//
// Callers attach a logger to a context with ToContext, WithKV or WithName and
// log through the package helpers. A context without a logger falls back to
// the process-wide one, whose level follows the log_level setting.
package logger
