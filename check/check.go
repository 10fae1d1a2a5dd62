// Package check implements the replication evaluation and aggregation
// engine of the probe. It classifies failed queries into typed outcomes,
// turns scheduler records into replication statuses, filters one-time jobs
// out of failure accounting, and reduces everything into a single verdict
// for the monitoring platform.
//
// All checks are pure with respect to their inputs: they read from a Source
// and return new values, so repeated evaluation of an unchanged cluster
// yields an identical verdict.
package check

import (
	"context"
	"fmt"

	"github.com/Napsty/check-couchdb-replication/model"
)

// Source is the slice of the CouchDB API the checks consume. It is
// implemented by couchdb.Client; tests substitute fakes.
type Source interface {
	ActiveTasks(ctx context.Context) ([]model.ActiveTask, error)
	SchedulerDoc(ctx context.Context, id string) (model.SchedulerDoc, error)
	SchedulerDocs(ctx context.Context) ([]model.SchedulerDoc, error)
	ReplicationDoc(ctx context.Context, id string) (model.ReplicationDocument, error)
}

// runningState is the only scheduler label that counts as healthy. The
// comparison is exact and case-sensitive: "Running" or "crashing" are
// failures.
const runningState = "running"

// ReplicationTarget identifies one replication job.
type ReplicationTarget struct {
	ID     string
	Source string
}

// Label renders the target for discovery summaries: "id (source)", or the
// bare id when the task carries no source.
func (t ReplicationTarget) Label() string {
	if t.Source == "" {
		return t.ID
	}
	return fmt.Sprintf("%s (%s)", t.ID, t.Source)
}

// ReplicationState is the probe's reading of one scheduler record.
type ReplicationState int

const (
	StateUnknown ReplicationState = iota
	StateRunning
	StateFailed
)

func (s ReplicationState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReplicationMode tells continuous and one-time jobs apart. It stays
// ModeUnknown until the replication document has been fetched.
type ReplicationMode int

const (
	ModeUnknown ReplicationMode = iota
	ModeContinuous
	ModeOneTime
)

func (m ReplicationMode) String() string {
	switch m {
	case ModeContinuous:
		return "continuous"
	case ModeOneTime:
		return "one-time"
	default:
		return "unknown"
	}
}

// ReplicationStatus is the evaluated state of one replication job. Values
// are immutable; re-evaluation produces a new status.
type ReplicationStatus struct {
	Target     ReplicationTarget
	State      ReplicationState
	ErrorCount int
	RawState   string
}

// NewStatus derives the typed status from one scheduler record.
func NewStatus(doc model.SchedulerDoc) ReplicationStatus {
	state := StateFailed
	if doc.State == runningState {
		state = StateRunning
	}
	return ReplicationStatus{
		Target:     ReplicationTarget{ID: doc.DocID, Source: doc.Source},
		State:      state,
		ErrorCount: doc.ErrorCount,
		RawState:   doc.State,
	}
}
