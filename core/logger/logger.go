package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the process-wide logger. Safe to call more than once.
func Init(environment string) {
	once.Do(func() {
		var cfg zap.Config
		if environment == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		cfg.DisableStacktrace = true

		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			l = zap.NewNop()
		}
		sugar = l.Sugar()
	})
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

func Debug(msg string, keysAndValues ...any) {
	get().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	get().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	get().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	get().Errorw(msg, keysAndValues...)
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
