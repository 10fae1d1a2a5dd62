package check

import (
	"context"
	"fmt"
)

// EvaluateTarget checks a single replication by its document id. Any state
// label other than exactly "running" is a failure; the raw label is carried
// into the summary so the operator sees what the scheduler reported.
func EvaluateTarget(ctx context.Context, src Source, id string) AggregateVerdict {
	doc, err := src.SchedulerDoc(ctx, id)
	if kind := Classify(err); kind != KindNone {
		if kind == KindNotFound {
			return AggregateVerdict{
				Severity: SeverityCritical,
				Summary:  fmt.Sprintf("Replication %s not found", id),
			}
		}
		return Fatal(kind, err)
	}

	status := NewStatus(doc)
	if status.Target.ID == "" {
		status.Target.ID = id
	}

	verdict := AggregateVerdict{
		Included: []ReplicationStatus{status},
		Perf:     []PerfData{{Label: "errors", Value: int64(status.ErrorCount)}},
	}
	if status.State == StateRunning {
		verdict.Severity = SeverityOK
		verdict.Summary = fmt.Sprintf("Replication %s is running", status.Target.ID)
	} else {
		verdict.Severity = SeverityCritical
		verdict.Summary = fmt.Sprintf("Replication %s is %s", status.Target.ID, status.RawState)
	}
	return verdict
}
