// Package cli contains the command line interface for tagex.
//
// # Usage
//
// The default command renders template text read from source files, stdin,
// or positional arguments:
//
//	# Render a template file with variables from a YAML file
//	tagex --source template.txt --vars values.yaml
//
//	# Render stdin with inline variable assignments
//	echo 'Hello {name.strtoupper}!' | tagex --source - --set name=hadi
//
//	# Render inline template text
//	tagex render --set name=hadi 'Hello {name}!'
//
// # Configuration
//
// Flag defaults may be set in a YAML configuration file located at
// $XDG_CONFIG_HOME/tagex/config.yaml (or the platform equivalent). Flag
// names containing hyphens may use either hyphens or underscores as keys:
//
//	log_level: debug
//	log_format: json
//	log_pretty: true
//
// Command-line flags override configuration file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/tagex/pprof)
package cli
