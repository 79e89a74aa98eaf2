// Package profile provides optional runtime profiling for the tagex
// application.
//
// The package integrates [github.com/pkg/profile] behind a build tag.
// Profiling must be enabled at build time with the "pprof" tag; without it,
// all operations are no-ops with zero runtime overhead.
//
// # Available Profiling Modes
//
// The following profiling modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Usage
//
// The profiler is configured with a [Config] and started with
// [Config.Start]:
//
//	var cfg profile.Config = func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", true
//	}
//	defer cfg.Start().Stop()
//
// Profile files are written to the configured directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
// The tagex command exposes profiling through the --pprof-mode and
// --pprof-dir flags when built with the pprof tag:
//
//	go build -tags pprof .
//	./tagex --pprof-mode cpu --pprof-dir ./profiles render ...
//
// Analyze the collected data with the standard tooling:
//
//	go tool pprof ./tagex ./profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
