package check

import (
	"fmt"
	"strings"
)

// PerfData is one metric appended to the plugin line after the summary, in
// the label=value perfdata syntax monitoring platforms graph.
type PerfData struct {
	Label string
	Value int64
}

func (p PerfData) String() string {
	return fmt.Sprintf("%s=%d", p.Label, p.Value)
}

// AggregateVerdict is the terminal outcome of one invocation: a severity,
// a one-line summary, and the statuses that produced it. A failed status
// excluded by the one-time filter never appears in Included.
type AggregateVerdict struct {
	Severity Severity
	Summary  string
	Included []ReplicationStatus
	Perf     []PerfData
}

// Line renders the single plugin output line: severity banner, summary and
// optional perfdata.
func (v AggregateVerdict) Line() string {
	line := fmt.Sprintf("REPLICATION %s - %s", v.Severity, v.Summary)
	if len(v.Perf) > 0 {
		parts := make([]string, len(v.Perf))
		for i, p := range v.Perf {
			parts[i] = p.String()
		}
		line += " | " + strings.Join(parts, " ")
	}
	return line
}

// Fatal builds the terminal verdict for a non-recoverable classification
// result. The messages are fixed per kind so that every mode reports
// transport and authorization problems identically; err contributes detail
// for connectivity failures, where the cause matters to the operator.
func Fatal(kind ErrorKind, err error) AggregateVerdict {
	switch kind {
	case KindMissingCredentials:
		return AggregateVerdict{
			Severity: SeverityUnknown,
			Summary:  "missing credentials - both username and password are required",
		}
	case KindAuthFailure:
		return AggregateVerdict{
			Severity: SeverityCritical,
			Summary:  "authentication failed - name or password is incorrect",
		}
	case KindNotAdmin:
		return AggregateVerdict{
			Severity: SeverityCritical,
			Summary:  "authentication failed - user is not a server admin",
		}
	case KindNotFound:
		return AggregateVerdict{
			Severity: SeverityCritical,
			Summary:  "replication document not found",
		}
	default:
		summary := "no response from server"
		if err != nil {
			summary = fmt.Sprintf("no response from server (%s)", err)
		}
		return AggregateVerdict{Severity: SeverityCritical, Summary: summary}
	}
}
