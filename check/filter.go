package check

import (
	"context"
)

// ShouldCount decides whether a failed replication participates in failure
// accounting. With ignoreOneTime false every failed status counts and no
// extra query is issued. With it true the replication document is fetched
// and only continuous jobs count.
//
// A definition that cannot be fetched still counts: the policy is "ignore
// one-time", not "ignore unknown". Only authorization failures propagate to
// the caller, because they invalidate every further query of the check.
func ShouldCount(ctx context.Context, src Source, status ReplicationStatus, ignoreOneTime bool) (bool, ReplicationMode, error) {
	if !ignoreOneTime {
		return true, ModeUnknown, nil
	}

	doc, err := src.ReplicationDoc(ctx, status.Target.ID)
	if err != nil {
		switch Classify(err) {
		case KindAuthFailure, KindNotAdmin:
			return false, ModeUnknown, err
		default:
			return true, ModeUnknown, nil
		}
	}
	if doc.Continuous {
		return true, ModeContinuous, nil
	}
	return false, ModeOneTime, nil
}
