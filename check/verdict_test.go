package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		severity Severity
		label    string
		exitCode int
	}{
		{severity: SeverityOK, label: "OK", exitCode: 0},
		{severity: SeverityWarning, label: "WARNING", exitCode: 1},
		{severity: SeverityCritical, label: "CRITICAL", exitCode: 2},
		{severity: SeverityUnknown, label: "UNKNOWN", exitCode: 3},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.label, tt.severity.String())
			assert.Equal(t, tt.exitCode, tt.severity.ExitCode())
		})
	}
}

func TestLine(t *testing.T) {
	verdict := AggregateVerdict{
		Severity: SeverityCritical,
		Summary:  "1 continuous replications not running - Details: rep_users (state: error, error count: 2)",
		Perf: []PerfData{
			{Label: "running", Value: 4},
			{Label: "failed", Value: 1},
		},
	}

	assert.Equal(t,
		"REPLICATION CRITICAL - 1 continuous replications not running - Details: rep_users (state: error, error count: 2) | running=4 failed=1",
		verdict.Line())
}

func TestLineWithoutPerfData(t *testing.T) {
	verdict := AggregateVerdict{Severity: SeverityWarning, Summary: "no replications found"}

	assert.Equal(t, "REPLICATION WARNING - no replications found", verdict.Line())
}

func TestFatal(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		err      error
		severity Severity
		summary  string
	}{
		{
			name:     "missing credentials",
			kind:     KindMissingCredentials,
			severity: SeverityUnknown,
			summary:  "missing credentials - both username and password are required",
		},
		{
			name:     "authentication failure",
			kind:     KindAuthFailure,
			err:      queryError(401, bodyBadCredentials),
			severity: SeverityCritical,
			summary:  "authentication failed - name or password is incorrect",
		},
		{
			name:     "not a server admin",
			kind:     KindNotAdmin,
			err:      queryError(401, bodyNotAdmin),
			severity: SeverityCritical,
			summary:  "authentication failed - user is not a server admin",
		},
		{
			name:     "not found",
			kind:     KindNotFound,
			err:      queryError(404, bodyNotFound),
			severity: SeverityCritical,
			summary:  "replication document not found",
		},
		{
			name:     "connectivity with cause",
			kind:     KindConnectivity,
			err:      errors.New("query /_active_tasks: request timed out"),
			severity: SeverityCritical,
			summary:  "no response from server (query /_active_tasks: request timed out)",
		},
		{
			name:     "connectivity without cause",
			kind:     KindConnectivity,
			severity: SeverityCritical,
			summary:  "no response from server",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Fatal(tt.kind, tt.err)

			assert.Equal(t, tt.severity, verdict.Severity)
			assert.Equal(t, tt.summary, verdict.Summary)
		})
	}
}
