package wit

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger the decoder emits debug events through. Until
// SetLogger is called it is a nop, so decoding is silent by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs l as the package logger. Call it before constructing
// any Decoder; swapping loggers mid-decode is not synchronized.
func SetLogger(l *zap.Logger) {
	logger = l
}
