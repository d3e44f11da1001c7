// Package monitoring holds the observability backends: the zap logger,
// Prometheus metrics, and OpenTelemetry tracing setup.
package monitoring

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vigiaai/vigia-provision/pkg/constants"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// ZapLogger implements logger.Logger on top of zap. Trace and request
// identifiers are pulled from the context on every entry.
type ZapLogger struct {
	zl *zap.Logger
}

// NewZapLogger builds the production JSON logger at the configured level.
func NewZapLogger(level string) (logger.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		zapLevel,
	)
	return &ZapLogger{zl: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}, nil
}

func (l *ZapLogger) contextFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		fields = append(fields, zap.String("trace_id", span.SpanContext().TraceID().String()))
	}
	if reqID, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok && reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	return fields
}

func (l *ZapLogger) convert(ctx context.Context, fields []logger.Field) []zap.Field {
	out := l.contextFields(ctx)
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, fields ...logger.Field) {
	l.zl.Debug(msg, l.convert(ctx, fields)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, fields ...logger.Field) {
	l.zl.Info(msg, l.convert(ctx, fields)...)
}

func (l *ZapLogger) Warn(ctx context.Context, msg string, fields ...logger.Field) {
	l.zl.Warn(msg, l.convert(ctx, fields)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, err error, fields ...logger.Field) {
	l.zl.Error(msg, append(l.convert(ctx, fields), zap.Error(err))...)
}

func (l *ZapLogger) Fatal(ctx context.Context, msg string, err error, fields ...logger.Field) {
	l.zl.Fatal(msg, append(l.convert(ctx, fields), zap.Error(err))...)
}

func (l *ZapLogger) WithComponent(component string) logger.Logger {
	return &ZapLogger{zl: l.zl.With(zap.String("component", component))}
}

// Sync flushes buffered entries. Called on shutdown.
func (l *ZapLogger) Sync() error {
	return l.zl.Sync()
}
