// Package log records an operation journal for the onboarding tool.
//
// The journal is separate from operational logging (slog). Every request the
// tool issues, every rejection and completion, and every registry transition
// becomes an Event; the sequence answers "what did the tool ask, and what
// happened to each device" after the fact.
//
// # Basic Usage
//
//	// Console, for development
//	cfg.Journal = log.NewSlogAdapter(slog.Default())
//
//	// Binary file, read back with obt-log
//	fl, _ := log.NewFileLogger("obt.jlog")
//	cfg.Journal = fl
//
//	// Both
//	cfg.Journal = log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # File Format
//
// Journal files are a sequence of CBOR-encoded events with integer keys.
package log
