package mylog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcGrol/benefitcheckout/lib/mycontext"
)

var base = newZap()

func newZap() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

type standardLogger struct {
	componentName string
	logger        *zap.Logger
}

func newStandardLogger(componentName string) Logger {
	return standardLogger{
		componentName: componentName,
		logger:        base.Named(componentName),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	fields := []zap.Field{}
	if traceLabel != "" {
		fields = append(fields, zap.String("aggregate", traceLabel))
	}
	if requestID := mycontext.RequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request", requestID))
	}

	switch severity {
	case SeverityDebug:
		l.logger.Debug(msg, fields...)
	case SeverityWarn:
		l.logger.Warn(msg, fields...)
	case SeverityError:
		l.logger.Error(msg, fields...)
	default:
		l.logger.Info(msg, fields...)
	}
}
