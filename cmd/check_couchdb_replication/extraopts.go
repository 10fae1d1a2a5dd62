package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// defaultSection is the extra-opts section consulted when the argument
// names only a file.
const defaultSection = "check_couchdb_replication"

// extraOpts mirrors the flag surface for TOML decoding. Keys follow the
// long flag names. Pointer fields distinguish an absent key from a zero
// value so the file cannot accidentally reset a flag default.
type extraOpts struct {
	Hostname       *string `toml:"hostname"`
	Port           *int    `toml:"port"`
	SSL            *bool   `toml:"ssl"`
	Username       *string `toml:"username"`
	Password       *string `toml:"password"`
	Replication    *string `toml:"replication"`
	Discover       *bool   `toml:"discover"`
	IncludeOneTime *bool   `toml:"include-onetime"`
	Timeout        *int    `toml:"timeout"`
	Insecure       *bool   `toml:"insecure"`
}

// applyExtraOpts merges values from the --extra-opts file into o. Explicit
// command-line flags always win; file values only fill flags the caller
// did not set, following the monitoring-plugins extra-opts convention.
func applyExtraOpts(flags *pflag.FlagSet, o *options) error {
	section, file := splitExtraOpts(o.ExtraOpts)

	var doc map[string]extraOpts
	if _, err := toml.DecodeFile(file, &doc); err != nil {
		return fmt.Errorf("extra-opts %s: %w", file, err)
	}
	extra, ok := doc[section]
	if !ok {
		return fmt.Errorf("extra-opts %s: no section %q", file, section)
	}

	if extra.Hostname != nil && !flags.Changed("hostname") {
		o.Hostname = *extra.Hostname
	}
	if extra.Port != nil && !flags.Changed("port") {
		o.Port = *extra.Port
	}
	if extra.SSL != nil && !flags.Changed("ssl") {
		o.TLS = *extra.SSL
	}
	if extra.Username != nil && !flags.Changed("username") {
		o.Username = *extra.Username
	}
	if extra.Password != nil && !flags.Changed("password") {
		o.Password = *extra.Password
	}
	if extra.Replication != nil && !flags.Changed("replication") {
		o.Replication = *extra.Replication
	}
	if extra.Discover != nil && !flags.Changed("discover") {
		o.Discover = *extra.Discover
	}
	if extra.IncludeOneTime != nil && !flags.Changed("include-onetime") {
		o.IncludeOneTime = *extra.IncludeOneTime
	}
	if extra.Timeout != nil && !flags.Changed("timeout") {
		o.Timeout = *extra.Timeout
	}
	if extra.Insecure != nil && !flags.Changed("insecure") {
		o.Insecure = *extra.Insecure
	}
	return nil
}

// splitExtraOpts parses a "section@file" argument. A bare path selects the
// default section.
func splitExtraOpts(arg string) (section, file string) {
	if at := strings.IndexByte(arg, '@'); at >= 0 {
		return arg[:at], arg[at+1:]
	}
	return defaultSection, arg
}
