package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// newLogger returns the console logger: errors go to stderr, everything
// else enabled goes to stdout.
func newLogger(debug, quiet bool) *zap.Logger {
	encoder := func(stream *os.File) zapcore.Encoder {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeCaller = nil
		if term.IsTerminal(int(stream.Fd())) {
			ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
			ec.TimeKey = zapcore.OmitKey
		} else {
			ec.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		return zapcore.NewConsoleEncoder(ec)
	}

	lowest := zapcore.InfoLevel
	if debug {
		lowest = zapcore.DebugLevel
	}

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zapcore.NewNopCore()
	if !quiet {
		lowPriority = zapcore.NewCore(encoder(os.Stdout), zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lowest <= lvl && lvl < zapcore.ErrorLevel
			}))
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder(os.Stderr), zapcore.Lock(os.Stderr), highPriority),
		lowPriority,
	)
	return zap.New(core).Named(appName)
}
