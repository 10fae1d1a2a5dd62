package check

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Napsty/check-couchdb-replication/model"
)

// mixedCluster returns a source with one running replication, one failed
// continuous replication and one failed one-time replication.
func mixedCluster() *fakeSource {
	return &fakeSource{
		schedulerList: []model.SchedulerDoc{
			{DocID: "rep_orders", State: "running"},
			{DocID: "rep_users", State: "error", ErrorCount: 2},
			{DocID: "rep_migrate", State: "error", ErrorCount: 1},
		},
		replicationDoc: map[string]model.ReplicationDocument{
			"rep_users":   {ID: "rep_users", Continuous: true},
			"rep_migrate": {ID: "rep_migrate"},
		},
	}
}

func TestAggregateAllIgnoresOneTimeJobs(t *testing.T) {
	src := mixedCluster()

	verdict := AggregateAll(context.Background(), src, true)

	assert.Equal(t, SeverityCritical, verdict.Severity)
	assert.Equal(t, "1 continuous replications not running - Details: rep_users (state: error, error count: 2)", verdict.Summary)
	require.Len(t, verdict.Included, 1)
	assert.Equal(t, "rep_users", verdict.Included[0].Target.ID)
	assert.Equal(t, []PerfData{{Label: "running", Value: 1}, {Label: "failed", Value: 1}}, verdict.Perf)

	// definitions are only fetched for replications that are not running
	assert.Equal(t, []string{"rep_users", "rep_migrate"}, src.replicationCalls)
}

func TestAggregateAllCountsOneTimeJobsWhenAsked(t *testing.T) {
	src := mixedCluster()

	verdict := AggregateAll(context.Background(), src, false)

	assert.Equal(t, SeverityCritical, verdict.Severity)
	assert.Equal(t, "2 continuous replications not running - Details: rep_users (state: error, error count: 2) rep_migrate (state: error, error count: 1)", verdict.Summary)
	require.Len(t, verdict.Included, 2)
	assert.Equal(t, "rep_users", verdict.Included[0].Target.ID)
	assert.Equal(t, "rep_migrate", verdict.Included[1].Target.ID)
	assert.Equal(t, []PerfData{{Label: "running", Value: 1}, {Label: "failed", Value: 2}}, verdict.Perf)

	// counting everything needs no definition queries at all
	assert.Empty(t, src.replicationCalls)
}

func TestAggregateAllHealthyCluster(t *testing.T) {
	src := &fakeSource{schedulerList: []model.SchedulerDoc{
		{DocID: "rep_orders", State: "running"},
		{DocID: "rep_users", State: "running"},
	}}

	verdict := AggregateAll(context.Background(), src, true)

	assert.Equal(t, SeverityOK, verdict.Severity)
	assert.Equal(t, "All 2 continuous replications running", verdict.Summary)
	assert.Len(t, verdict.Included, 2)
	assert.Equal(t, []PerfData{{Label: "running", Value: 2}, {Label: "failed", Value: 0}}, verdict.Perf)
	assert.Empty(t, src.replicationCalls)
}

func TestAggregateAllEmptyScheduler(t *testing.T) {
	verdict := AggregateAll(context.Background(), &fakeSource{}, true)

	assert.Equal(t, SeverityOK, verdict.Severity)
	assert.Equal(t, "All 0 continuous replications running", verdict.Summary)
}

func TestAggregateAllSchedulerQueryFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		summary string
	}{
		{
			name:    "bad credentials",
			err:     queryError(401, bodyBadCredentials),
			summary: "authentication failed - name or password is incorrect",
		},
		{
			name:    "unreachable server",
			err:     &model.QueryError{Path: "/_scheduler/docs/_replicator", Err: errors.New("dial tcp 127.0.0.1:5984: connect: connection refused")},
			summary: "no response from server (query /_scheduler/docs/_replicator: dial tcp 127.0.0.1:5984: connect: connection refused)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := AggregateAll(context.Background(), &fakeSource{schedulerListErr: tt.err}, true)

			assert.Equal(t, SeverityCritical, verdict.Severity)
			assert.Equal(t, tt.summary, verdict.Summary)
		})
	}
}

func TestAggregateAllAuthFailureDuringFiltering(t *testing.T) {
	// the session can expire between the scheduler query and the
	// definition lookups; that ends the whole check, not just one item
	src := mixedCluster()
	src.replicationDocErr = map[string]error{"rep_users": queryError(401, bodyBadCredentials)}

	verdict := AggregateAll(context.Background(), src, true)

	assert.Equal(t, SeverityCritical, verdict.Severity)
	assert.Equal(t, "authentication failed - name or password is incorrect", verdict.Summary)
	assert.Empty(t, verdict.Included)
}

func TestAggregateAllCountsJobsWithUnknownDefinition(t *testing.T) {
	// a deleted definition does not excuse a failed replication
	src := mixedCluster()
	src.replicationDocErr = map[string]error{"rep_users": queryError(404, bodyNotFound)}

	verdict := AggregateAll(context.Background(), src, true)

	assert.Equal(t, SeverityCritical, verdict.Severity)
	require.Len(t, verdict.Included, 1)
	assert.Equal(t, "rep_users", verdict.Included[0].Target.ID)
}

func TestAggregateAllIsDeterministic(t *testing.T) {
	src := mixedCluster()

	first := AggregateAll(context.Background(), src, true)
	second := AggregateAll(context.Background(), src, true)

	assert.Equal(t, first, second)
}
