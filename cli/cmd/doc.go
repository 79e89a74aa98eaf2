// Package cmd provides the subcommands of the tagex command-line interface:
// rendering template text, listing resolvable functions, starting an
// interactive session, and printing version information.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the default configuration file.
	ConfigIdentifier = "config"
)
