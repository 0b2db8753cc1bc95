package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across the service.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Fatal(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Logger
}

// ZapLogger implements Logger on top of zap's SugaredLogger.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// NewLogger builds a production JSON logger at the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func NewLogger(level string) *ZapLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.NewProductionConfig()
	config.EncoderConfig = encoderConfig

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	return &ZapLogger{logger: logger.Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop().Sugar()}
}

func (l *ZapLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *ZapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l *ZapLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}

func (l *ZapLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l *ZapLogger) Fatal(msg string, keysAndValues ...interface{}) {
	l.logger.Fatalw(msg, keysAndValues...)
}

func (l *ZapLogger) With(keysAndValues ...interface{}) Logger {
	return &ZapLogger{logger: l.logger.With(keysAndValues...)}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// NewWithCore wraps an existing zap core, e.g. an observer in tests.
func NewWithCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{logger: zap.New(core).Sugar()}
}
