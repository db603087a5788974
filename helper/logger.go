package helper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

var (
	logger     = zap.NewNop()
	InitLogger = sync.OnceFunc(func() {
		level := zap.InfoLevel
		if envLevel, ok := os.LookupEnv("LOG_LEVEL"); ok && envLevel != "" {
			if parsed, err := zapcore.ParseLevel(envLevel); err == nil {
				level = parsed
			}
		}
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = "timestamp"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		logger = zap.Must(zap.Config{
			Level:             zap.NewAtomicLevelAt(level),
			DisableCaller:     true,
			DisableStacktrace: true,
			Encoding:          "json",
			EncoderConfig:     encoderCfg,
			OutputPaths:       []string{"stderr"},
			ErrorOutputPaths:  []string{"stderr"},
			InitialFields:     map[string]interface{}{"service": "kilau"},
		}.Build())
	})
)

func GetLogger() *zap.Logger {
	return logger
}

// WithRequestID tags ctx so entries logged under it carry the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}

// write must be called directly from Log or Capture; error entries record
// the caller of those two.
func write(ctx context.Context, level zapcore.Level, message, context, scope string) {
	entry := logger.Check(level, message)
	if entry == nil {
		return
	}
	fields := []zap.Field{zap.String("context", context)}
	if scope != "" {
		fields = append(fields, zap.String("scope", scope))
	}
	if requestID := RequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if level >= zap.ErrorLevel {
		if pc, file, line, ok := runtime.Caller(2); ok {
			var name string
			if fn := runtime.FuncForPC(pc); fn != nil {
				name = fn.Name()
			}
			fields = append(fields, zap.String("func", name), zap.String("file", fmt.Sprintf("%s:%d", file, line)))
		}
	}
	entry.Write(fields...)
}

func Log(ctx context.Context, level zapcore.Level, message, context, scope string) {
	write(ctx, level, message, context, scope)
}

// Capture logs err; a missing row is an expected outcome and never logged as an error.
func Capture(ctx context.Context, level zapcore.Level, err error, context, scope string) {
	if level >= zap.ErrorLevel && errors.Is(err, pgx.ErrNoRows) {
		return
	}
	write(ctx, level, err.Error(), context, scope)
}
