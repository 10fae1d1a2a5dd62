package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// allReplications is the -r value that selects every continuous
// replication instead of a single document.
const allReplications = "ALL"

// Configuration errors, reported as UNKNOWN before any query is issued.
var (
	errMissingHost        = errors.New("no hostname given (-H)")
	errModeRequired       = errors.New("exactly one of -r (replication id or ALL) and -d (discover) is required")
	errPartialCredentials = errors.New("both username and password are required")
)

// options is the resolved plugin configuration. Precedence is command line
// first, then extra-opts file values, then environment variables.
type options struct {
	Hostname       string
	Port           int
	TLS            bool
	Username       string
	Password       string
	Replication    string
	Discover       bool
	IncludeOneTime bool
	Timeout        int
	Insecure       bool
	Verbose        bool
	ExtraOpts      string
}

// bind registers the flag surface on the root command. The short flags
// follow the monitoring-plugins conventions (-H host, -t timeout, ...).
func (o *options) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.Hostname, "hostname", "H", "", "CouchDB host to check (required)")
	flags.IntVarP(&o.Port, "port", "P", 5984, "CouchDB port")
	flags.BoolVarP(&o.TLS, "ssl", "S", false, "Connect via HTTPS")
	flags.StringVarP(&o.Username, "username", "u", "", "Username (or COUCHDB_USER)")
	flags.StringVarP(&o.Password, "password", "p", "", "Password (or COUCHDB_PASS)")
	flags.StringVarP(&o.Replication, "replication", "r", "", "Replication document id to check, or ALL for every continuous replication")
	flags.BoolVarP(&o.Discover, "discover", "d", false, "Discover currently active replications")
	flags.BoolVarP(&o.IncludeOneTime, "include-onetime", "i", false, "Count one-time replications as failures too")
	flags.IntVarP(&o.Timeout, "timeout", "t", 10, "Query timeout in seconds")
	flags.BoolVarP(&o.Insecure, "insecure", "k", false, "Skip TLS certificate verification")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "Debug logging on stderr")
	flags.StringVar(&o.ExtraOpts, "extra-opts", "", "Read defaults from a [section@]file TOML file")
}

// applyEnvironment fills missing credentials from the environment. A .env
// file in the working directory is honored, which keeps passwords out of
// the process list and out of the monitoring configuration.
func (o *options) applyEnvironment() {
	_ = godotenv.Load()
	if o.Username == "" {
		o.Username = os.Getenv("COUCHDB_USER")
	}
	if o.Password == "" {
		o.Password = os.Getenv("COUCHDB_PASS")
	}
}

// validate rejects configurations that cannot produce a meaningful check.
// It runs after extra-opts and environment merging and before any network
// activity.
func (o *options) validate() error {
	if o.Hostname == "" {
		return errMissingHost
	}
	if o.Discover == (o.Replication != "") {
		return errModeRequired
	}
	if (o.Username == "") != (o.Password == "") {
		return errPartialCredentials
	}
	return nil
}
