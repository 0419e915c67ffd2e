package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "crewcenter"

var globalLogger *zap.SugaredLogger

// Init builds the global JSON logger. Production environments use the zap
// production preset, everything else the development one.
func Init(appEnv string, level string) error {
	cfg := zap.NewDevelopmentConfig()
	if appEnv == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.InitialFields = map[string]interface{}{"service": serviceName, "env": appEnv}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	globalLogger = logger.Sugar()
	return nil
}

// SetLogger swaps the global logger; tests pass zap.NewNop()
func SetLogger(l *zap.Logger) {
	globalLogger = l.Sugar()
}

// GetLogger returns the global logger, building a production one when Init was never called
func GetLogger() *zap.SugaredLogger {
	if globalLogger == nil {
		logger, _ := zap.NewProduction()
		globalLogger = logger.Sugar().With("service", serviceName)
	}
	return globalLogger
}

// Close flushes buffered entries
func Close() error {
	if globalLogger == nil {
		return nil
	}
	return globalLogger.Sync()
}

func Info(message string, fields ...interface{}) {
	GetLogger().Infow(message, fields...)
}

func Debug(message string, fields ...interface{}) {
	GetLogger().Debugw(message, fields...)
}

func Warn(message string, fields ...interface{}) {
	GetLogger().Warnw(message, fields...)
}

func Error(message string, fields ...interface{}) {
	GetLogger().Errorw(message, fields...)
}

// Fatal logs and exits the process
func Fatal(message string, fields ...interface{}) {
	GetLogger().Fatalw(message, fields...)
	os.Exit(1)
}

// WithRequest scopes a logger to one HTTP request
func WithRequest(requestID, userID, route string) *zap.SugaredLogger {
	return GetLogger().With("request_id", requestID, "user_id", userID, "route", route)
}

// WithPirep scopes a logger to one flight report and the pilot acting on it
func WithPirep(pirepID, userID string) *zap.SugaredLogger {
	return GetLogger().With("pirep_id", pirepID, "user_id", userID)
}
