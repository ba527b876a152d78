// Package logging builds the process-wide zap logger and the gin middleware
// that writes one structured line per request.
package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"

	// RequestIDKey is the gin context key and response header carrying the request id.
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// New builds a logger for level ("debug", "info", "warn", "error") and
// format ("json" or "console").
func New(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	encoding := FormatJSON
	switch strings.ToLower(format) {
	case "", FormatJSON:
	case FormatConsole:
		encoding = FormatConsole
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

// Setup builds the logger and installs it as the zap global. The returned
// function restores the previous global.
func Setup(level, format string) (*zap.Logger, func(), error) {
	logger, err := New(level, format)
	if err != nil {
		return nil, nil, err
	}
	undo := zap.ReplaceGlobals(logger)
	return logger, func() {
		_ = logger.Sync()
		undo()
	}, nil
}

// Middleware tags every request with an id and logs it once it completes.
// Server errors log at error level, client errors at warn.
func Middleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// FromContext returns the global logger tagged with the request id of c.
func FromContext(c *gin.Context) *zap.Logger {
	logger := zap.L()
	if id, ok := c.Get(RequestIDKey); ok {
		if s, ok := id.(string); ok {
			logger = logger.With(zap.String("request_id", s))
		}
	}
	return logger
}

// KeyValue adapts zap to loggers that take a message followed by
// alternating keys and values, such as backlite.Logger.
type KeyValue struct {
	sugar *zap.SugaredLogger
}

// NewKeyValue wraps logger with an optional component name.
func NewKeyValue(logger *zap.Logger, component string) *KeyValue {
	if component != "" {
		logger = logger.Named(component)
	}
	return &KeyValue{sugar: logger.Sugar()}
}

func (kv *KeyValue) Info(message string, params ...any) {
	kv.sugar.Infow(message, params...)
}

func (kv *KeyValue) Error(message string, params ...any) {
	kv.sugar.Errorw(message, params...)
}
