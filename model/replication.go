// Package model defines the typed structures the probe exchanges with a
// CouchDB cluster: active-task entries, replication scheduler records,
// replication documents, and the error shapes returned by failed queries.
package model

// ActiveTask is one entry of the /_active_tasks feed. The feed mixes every
// task type the cluster runs (indexers, compaction, replication);
// replication tasks carry Type == "replication".
type ActiveTask struct {
	Type          string `json:"type"`           // task type, e.g. "replication"
	Node          string `json:"node"`           // cluster node running the task
	Pid           string `json:"pid"`            // Erlang process id of the task
	DocID         string `json:"doc_id"`         // _replicator document id, empty for transient jobs
	ReplicationID string `json:"replication_id"` // internal replication session id
	Continuous    bool   `json:"continuous"`     // whether the job is continuous
	Source        string `json:"source"`         // source database or URL
	Target        string `json:"target"`         // target database or URL
	DocsRead      int64  `json:"docs_read"`      // documents read so far
	DocsWritten   int64  `json:"docs_written"`   // documents written so far
	WriteFailures int64  `json:"doc_write_failures"`
	StartedOn     int64  `json:"started_on"` // Unix timestamp the task started
	UpdatedOn     int64  `json:"updated_on"` // Unix timestamp of the last update
}

// TaskID returns the identifier a replication task should be addressed by.
// Jobs created through the _replicator database carry a document id;
// transient jobs only have the internal replication id.
func (t ActiveTask) TaskID() string {
	if t.DocID != "" {
		return t.DocID
	}
	return t.ReplicationID
}

// SchedulerDoc is the replication scheduler's current-state record for one
// replication job, served under /_scheduler/docs/_replicator. It is the
// authoritative answer to "is this replication running right now".
type SchedulerDoc struct {
	// Database holding the replication document
	Database string `json:"database"`

	// DocID is the replication document id
	DocID string `json:"doc_id"`

	// ID is the internal replication id, null until the job is scheduled
	ID string `json:"id"`

	// Node is the cluster node the scheduler placed the job on
	Node string `json:"node"`

	Source string `json:"source"`
	Target string `json:"target"`

	// State is the scheduler state label: initializing, running, pending,
	// crashing, error, completed or failed
	State string `json:"state"`

	// ErrorCount is the number of consecutive errors the scheduler has seen
	ErrorCount int `json:"error_count"`

	StartTime   string `json:"start_time"`
	LastUpdated string `json:"last_updated"`
}

// SchedulerDocs is the list response of /_scheduler/docs/_replicator.
type SchedulerDocs struct {
	TotalRows int            `json:"total_rows"`
	Offset    int            `json:"offset"`
	Docs      []SchedulerDoc `json:"docs"`
}

// ReplicationDocument is the job's configuration document from the
// _replicator database, distinct from its scheduler record. Source and
// target are omitted on purpose: CouchDB accepts both string and object
// forms there, and the probe only consults the continuous flag.
type ReplicationDocument struct {
	ID  string `json:"_id"`
	Rev string `json:"_rev"`

	// Continuous distinguishes continuous jobs from one-time jobs
	Continuous bool `json:"continuous"`

	CreateTarget bool   `json:"create_target"`
	Owner        string `json:"owner"`
}
