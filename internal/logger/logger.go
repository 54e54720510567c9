package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

var (
	//nolint:gochecknoglobals // The process-wide logger is shared by every package.
	globalLogger *zap.SugaredLogger

	//nolint:gochecknoglobals // Guards globalLogger replacement.
	globalLoggerMu sync.RWMutex

	//nolint:gochecknoglobals // Atomic level lets SetLevel affect already created loggers.
	defaultLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

//nolint:gochecknoinits // The logger must be usable before configuration is loaded.
func init() {
	SetLogger(New(defaultLevel))
}

// New creates a console logger writing to stderr.
// A nil level falls back to the shared atomic level.
func New(level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if level == nil {
		level = defaultLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "message",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		level,
	)

	return zap.New(core, options...).Sugar()
}

// ParseLogLevel converts a textual level into a zap level.
// The second result is false for unknown or empty input, in which case InfoLevel is returned.
func ParseLogLevel(level string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "dpanic":
		return zapcore.DPanicLevel, true
	case "panic":
		return zapcore.PanicLevel, true
	case "fatal":
		return zapcore.FatalLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// Logger returns the process-wide logger.
func Logger() *zap.SugaredLogger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()

	return globalLogger
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *zap.SugaredLogger) {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()

	globalLogger = l
}

// Level returns the current level of the shared atomic level.
func Level() zapcore.Level {
	return defaultLevel.Level()
}

// SetLevel changes the shared atomic level.
func SetLevel(level zapcore.Level) {
	defaultLevel.SetLevel(level)
}

// IsDebugLevel reports whether debug messages are currently emitted.
func IsDebugLevel() bool {
	return defaultLevel.Enabled(zapcore.DebugLevel)
}

// ToContext attaches a logger to the context.
func ToContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// FromContext returns the logger attached to the context, or the process-wide logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerContextKey{}).(*zap.SugaredLogger); ok && l != nil {
			return l
		}
	}

	return Logger()
}

// WithKV returns a context whose logger carries the given key-value pairs.
func WithKV(ctx context.Context, keysAndValues ...any) context.Context {
	return ToContext(ctx, FromContext(ctx).With(keysAndValues...))
}

// WithName returns a context whose logger is named.
func WithName(ctx context.Context, name string) context.Context {
	return ToContext(ctx, FromContext(ctx).Named(name))
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, args ...any) {
	FromContext(ctx).Debug(args...)
}

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Debugf(format, args...)
}

// DebugKV logs a message with key-value pairs at debug level.
func DebugKV(ctx context.Context, message string, keysAndValues ...any) {
	FromContext(ctx).Debugw(message, keysAndValues...)
}

// Info logs a message at info level.
func Info(ctx context.Context, args ...any) {
	FromContext(ctx).Info(args...)
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Infof(format, args...)
}

// InfoKV logs a message with key-value pairs at info level.
func InfoKV(ctx context.Context, message string, keysAndValues ...any) {
	FromContext(ctx).Infow(message, keysAndValues...)
}

// Warn logs a message at warn level.
func Warn(ctx context.Context, args ...any) {
	FromContext(ctx).Warn(args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Warnf(format, args...)
}

// WarnKV logs a message with key-value pairs at warn level.
func WarnKV(ctx context.Context, message string, keysAndValues ...any) {
	FromContext(ctx).Warnw(message, keysAndValues...)
}

// Error logs a message at error level.
func Error(ctx context.Context, args ...any) {
	FromContext(ctx).Error(args...)
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Errorf(format, args...)
}

// ErrorKV logs a message with key-value pairs at error level.
func ErrorKV(ctx context.Context, message string, keysAndValues ...any) {
	FromContext(ctx).Errorw(message, keysAndValues...)
}

// Fatal logs a message at fatal level and exits the process.
func Fatal(ctx context.Context, args ...any) {
	FromContext(ctx).Fatal(args...)
}

// Fatalf logs a formatted message at fatal level and exits the process.
func Fatalf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Fatalf(format, args...)
}

// FatalKV logs a message with key-value pairs at fatal level and exits the process.
func FatalKV(ctx context.Context, message string, keysAndValues ...any) {
	FromContext(ctx).Fatalw(message, keysAndValues...)
}
