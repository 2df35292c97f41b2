package mylog

import (
	"context"
	"log"
)

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// New creates a logger for the named component. Zap console output until Configure selects otherwise.
var New func(name string) Logger = newStandardLogger

// Configure selects the logger implementation: structured json when running in a Google Cloud
// project, zap console output everywhere else. Call it before any logger is created.
func Configure(projectID string) {
	if projectID == "" {
		New = newStandardLogger
		return
	}

	New = func(name string) Logger {
		return newGcloudLogger(projectID, name)
	}
	// Prefix text prevents the message from being parsed as JSON.
	// A timestamp is added when shipping logs to Cloud Logging.
	log.SetFlags(0)
}

//go:generate mockgen -source=api.go -package mylog -destination logger_mock.go Logger
type Logger interface {
	Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any)
}
