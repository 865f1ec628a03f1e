package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func validLevel(l string) bool {
	switch l {
	case LevelNone, LevelNormal, LevelDebug:
		return true
	}
	return false
}

// Prepare returns the program logger: a console logger writing info and
// debug to stdout and errors to stderr, or a no-op logger for "none".
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	var lowest zapcore.Level
	switch conf.Level {
	case LevelNone:
		return zap.New(zapcore.NewNopCore()), nil
	case LevelNormal:
		lowest = zapcore.InfoLevel
	case LevelDebug:
		lowest = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown logging level %q", conf.Level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(ec)

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lowest <= lvl && lvl < zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lowPriority),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), highPriority),
	)
	return zap.New(core), nil
}
