package log

import (
	"go.uber.org/zap"
)

var defaultLogger = zap.NewNop()

// Get returns the process-wide logger. It is a no-op until Set is called.
func Get() *zap.Logger {
	return defaultLogger
}

// Set builds the development console logger used by the CLI and server.
func Set(debug bool) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	cfg := zap.Config{
		Level:            level,
		Development:      debug,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	var err error
	defaultLogger, err = cfg.Build()
	if err != nil {
		panic(err)
	}
}

// Flush syncs buffered log entries.
func Flush() {
	_ = defaultLogger.Sync()
}
