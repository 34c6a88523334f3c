package testutils

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a development logger writing to w. Higher levels are more verbose: level 4
// shows cache misses and level 6 the compiled graphs.
func NewLogger(w io.Writer, level int) logr.Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapcore.Level(-level)))
	zl := zap.New(core, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.Level(3)))

	return zapr.NewLogger(zl)
}
