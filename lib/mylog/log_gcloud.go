package mylog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/MarcGrol/benefitcheckout/lib/mycontext"
)

type structuredLogger struct {
	projectID     string
	componentName string
}

func newGcloudLogger(projectID string, componentName string) Logger {
	return structuredLogger{
		projectID:     projectID,
		componentName: componentName,
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	log.Println(entry{
		Component: l.componentName,
		Labels:    map[string]string{"aggregate": traceLabel},
		Trace:     l.trace(ctx),
		Severity:  string(severity),
		Message:   l.componentName + ":" + fmt.Sprintf(format, a...),
	}.String())
}

func (l structuredLogger) trace(ctx context.Context) string {
	traceID := mycontext.TraceID(ctx)
	if traceID == "" {
		return ""
	}
	return fmt.Sprintf("projects/%s/traces/%s", l.projectID, traceID)
}

type entry struct {
	Component string            `json:"component,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
	Trace     string            `json:"logging.googleapis.com/trace,omitempty"`
	Severity  string            `json:"severity,omitempty"`
	Message   string            `json:"message"`
}

func (e entry) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		log.Printf("error marshalling log record: %v", err)
	}

	return string(out)
}
