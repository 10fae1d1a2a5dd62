package check

import (
	"context"
	"strings"

	"github.com/Napsty/check-couchdb-replication/model"
)

// replicationTaskType marks replication entries in the active-tasks feed.
const replicationTaskType = "replication"

// Targets extracts the replication targets from an active-tasks feed,
// preserving feed order and skipping indexer, compaction and other
// non-replication tasks.
func Targets(tasks []model.ActiveTask) []ReplicationTarget {
	var targets []ReplicationTarget
	for _, task := range tasks {
		if task.Type != replicationTaskType {
			continue
		}
		targets = append(targets, ReplicationTarget{ID: task.TaskID(), Source: task.Source})
	}
	return targets
}

// Discover lists the currently active replications. Zero active
// replications is a warning, not an error: the cluster answered, there is
// just nothing to watch.
func Discover(ctx context.Context, src Source) AggregateVerdict {
	tasks, err := src.ActiveTasks(ctx)
	if kind := Classify(err); kind != KindNone {
		return Fatal(kind, err)
	}

	targets := Targets(tasks)
	if len(targets) == 0 {
		return AggregateVerdict{Severity: SeverityWarning, Summary: "no replications found"}
	}

	labels := make([]string, len(targets))
	for i, target := range targets {
		labels[i] = target.Label()
	}
	return AggregateVerdict{
		Severity: SeverityOK,
		Summary:  strings.Join(labels, " "),
		Perf:     []PerfData{{Label: "replications", Value: int64(len(targets))}},
	}
}
