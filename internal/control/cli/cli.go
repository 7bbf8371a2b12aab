// Package cli provides the command-line interface for rowedit.
package cli

type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	TuiCommand     TUICommand     `command:"tui" subcommands-optional:"true"`
	StatusCommand  StatusCommand  `command:"status" subcommands-optional:"true"`
	DirtyCommand   DirtyCommand   `command:"dirty" subcommands-optional:"true"`
	VersionCommand VersionCommand `command:"version" subcommands-optional:"true"`
}

var Opts CommandLineOpts
