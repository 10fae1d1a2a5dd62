package check

import (
	"context"
	"fmt"
	"strings"
)

// AggregateAll evaluates every replication the scheduler knows about and
// reduces them to one verdict. All scheduler records arrive in a single
// query; the one-time filter then issues up to one definition query per
// non-running replication, sequentially, preserving scheduler order
// throughout so the output stays deterministic.
func AggregateAll(ctx context.Context, src Source, ignoreOneTime bool) AggregateVerdict {
	docs, err := src.SchedulerDocs(ctx)
	if kind := Classify(err); kind != KindNone {
		return Fatal(kind, err)
	}

	var running, notRunning []ReplicationStatus
	for _, doc := range docs {
		status := NewStatus(doc)
		if status.State == StateRunning {
			running = append(running, status)
		} else {
			notRunning = append(notRunning, status)
		}
	}

	var failures []ReplicationStatus
	for _, status := range notRunning {
		count, _, err := ShouldCount(ctx, src, status, ignoreOneTime)
		if err != nil {
			return Fatal(Classify(err), err)
		}
		if count {
			failures = append(failures, status)
		}
	}

	perf := []PerfData{
		{Label: "running", Value: int64(len(running))},
		{Label: "failed", Value: int64(len(failures))},
	}

	if len(failures) > 0 {
		details := make([]string, len(failures))
		for i, failure := range failures {
			details[i] = fmt.Sprintf("%s (state: %s, error count: %d)",
				failure.Target.ID, failure.RawState, failure.ErrorCount)
		}
		return AggregateVerdict{
			Severity: SeverityCritical,
			Summary: fmt.Sprintf("%d continuous replications not running - Details: %s",
				len(failures), strings.Join(details, " ")),
			Included: failures,
			Perf:     perf,
		}
	}
	return AggregateVerdict{
		Severity: SeverityOK,
		Summary:  fmt.Sprintf("All %d continuous replications running", len(running)),
		Included: running,
		Perf:     perf,
	}
}
