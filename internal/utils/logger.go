package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger starts as a no-op so packages can log before InitLogger runs
// (tests never call it).
var Logger = zap.NewNop()

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func parseLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger writes JSON lines to ./logs/app.log and console lines to stdout.
func InitLogger(logLevel string) error {
	level := parseLevel(logLevel)

	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile("./logs/app.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(logFile), level)
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(os.Stdout), level)

	Logger = zap.New(zapcore.NewTee(fileCore, consoleCore),
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("service", "pantrii")),
	)
	zap.ReplaceGlobals(Logger)
	return nil
}

func LogInfo(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func LogWarn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func LogError(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func LogDebug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func LogFatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

func SyncLogger() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
