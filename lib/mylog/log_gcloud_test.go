package mylog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry(t *testing.T) {
	e := entry{
		Component: "transactions",
		Labels:    map[string]string{"aggregate": "cs_test_123"},
		Trace:     "projects/p/traces/abc",
		Severity:  string(SeverityWarn),
		Message:   "transactions:Error appending transaction",
	}

	got := map[string]any{}
	err := json.Unmarshal([]byte(e.String()), &got)
	assert.NoError(t, err)
	assert.Equal(t, "projects/p/traces/abc", got["logging.googleapis.com/trace"])
	assert.Equal(t, "WARN", got["severity"])
	assert.Equal(t, "transactions:Error appending transaction", got["message"])
}
