// Package log provides a concurrency-safe simplified logging interface built
// on [log/slog].
//
// A [Logger] is an immutable value wrapping a configured slog.Logger.
// Construct one with [Make] and derive adjusted copies with [Logger.Wrap]:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//	)
//	logger.Info("ready", slog.String("mode", "strict"))
//
// Output formats are plain text, JSON, and a colorized pretty-text form for
// terminals. The package also keeps a process default logger used by the
// top-level helper functions; replace it with [SetDefault].
package log
