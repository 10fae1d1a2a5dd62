// check_couchdb_replication probes the replication subsystem of a CouchDB
// cluster and reports a single monitoring-plugin verdict: one line on
// stdout and an exit code of 0 (OK), 1 (WARNING), 2 (CRITICAL) or
// 3 (UNKNOWN).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Napsty/check-couchdb-replication/check"
	"github.com/Napsty/check-couchdb-replication/couchdb"
)

const version = "1.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run wires flags, configuration and the selected check mode together and
// returns the process exit code. It exists separately from main so tests
// can drive the whole plugin without spawning a process.
func run(args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	var verdict *check.AggregateVerdict

	root := &cobra.Command{
		Use:           "check_couchdb_replication",
		Short:         "Monitoring plugin that checks CouchDB replication status",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := execute(cmd, opts, stderr)
			verdict = &v
			return nil
		},
	}
	opts.bind(root)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		// flag parse errors land here; the monitoring platform still needs
		// a plugin line and a sane exit code
		v := check.AggregateVerdict{Severity: check.SeverityUnknown, Summary: err.Error()}
		fmt.Fprintln(stdout, v.Line())
		return v.Severity.ExitCode()
	}
	if verdict == nil {
		// --help or --version, nothing was checked
		return check.SeverityOK.ExitCode()
	}
	fmt.Fprintln(stdout, verdict.Line())
	return verdict.Severity.ExitCode()
}

// execute resolves the final option set and dispatches the selected mode.
// Configuration problems yield UNKNOWN before any query is issued.
func execute(cmd *cobra.Command, opts *options, stderr io.Writer) check.AggregateVerdict {
	if opts.ExtraOpts != "" {
		if err := applyExtraOpts(cmd.Flags(), opts); err != nil {
			return check.AggregateVerdict{Severity: check.SeverityUnknown, Summary: err.Error()}
		}
	}
	opts.applyEnvironment()
	if err := opts.validate(); err != nil {
		if errors.Is(err, errPartialCredentials) {
			return check.Fatal(check.KindMissingCredentials, nil)
		}
		return check.AggregateVerdict{Severity: check.SeverityUnknown, Summary: err.Error()}
	}

	client := couchdb.NewClient(couchdb.Options{
		Host:     opts.Hostname,
		Port:     opts.Port,
		TLS:      opts.TLS,
		Username: opts.Username,
		Password: opts.Password,
		Timeout:  time.Duration(opts.Timeout) * time.Second,
		Insecure: opts.Insecure,
		Logger:   newLogger(stderr, opts.Verbose),
	})

	ctx := context.Background()
	switch {
	case opts.Discover:
		return check.Discover(ctx, client)
	case opts.Replication == allReplications:
		return check.AggregateAll(ctx, client, !opts.IncludeOneTime)
	default:
		return check.EvaluateTarget(ctx, client, opts.Replication)
	}
}

// newLogger returns a debug logger on w when verbose is set. Otherwise all
// log output is discarded: stdout belongs to the plugin line, and stderr
// stays quiet unless the operator asked for detail.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
