package logger

import (
	"fmt"
	"strings"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the global logger instance. It discards everything until Init runs.
	Log *zap.Logger = zap.NewNop()
)

// Options describes the logger a process wants
type Options struct {
	// Stage picks the encoding: JSON in prod, colored console elsewhere
	Stage string
	// Level is a LOG_LEVEL value; empty means info
	Level string
	// Fields are stamped on every entry next to service and stage
	Fields []zap.Field
}

// Init builds a logger from opts and installs it as Log
func Init(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// InitLogger installs an info-level logger for stage. It panics if the
// logger cannot be built, so it suits init functions and tests.
func InitLogger(stage string) {
	if err := Init(Options{Stage: stage}); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

// New builds a logger without installing it
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if opts.Stage == constants.ProdEnvironment {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.DisableStacktrace = level > zapcore.DebugLevel
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(level)

	fields := append([]zap.Field{
		zap.String("service", constants.ServiceName),
		zap.String("stage", opts.Stage),
	}, opts.Fields...)

	l, err := cfg.Build(zap.Fields(fields...))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// ParseLevel reads a LOG_LEVEL value. Matching ignores case, "warning" is
// accepted for warn and an empty value is info.
func ParseLevel(text string) (zapcore.Level, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	switch text {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		text = "warn"
	}

	level, err := zapcore.ParseLevel(text)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", text)
	}
	return level, nil
}

// Info logs a message at InfoLevel
func Info(msg string, fields ...zapcore.Field) {
	Log.Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(msg string, fields ...zapcore.Field) {
	Log.Error(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(msg string, fields ...zapcore.Field) {
	Log.Debug(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(msg string, fields ...zapcore.Field) {
	Log.Warn(msg, fields...)
}

// Fatal logs a message at FatalLevel and then calls os.Exit(1)
func Fatal(msg string, fields ...zapcore.Field) {
	Log.Fatal(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return Log.Sync()
}
