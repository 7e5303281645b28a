// Package crex provides the logging handler and error-wrapping helpers used
// throughout chariotd.
//
// The handler is a [slog.Handler] that buffers records until explicitly
// committed via Flush, so that early-startup log lines (emitted before CLI
// flags have been parsed) are not lost or mis-formatted; once the CLI knows
// the final verbosity and output stream it reconfigures the handler in
// place and calls Flush.
//
// Wrap and Wrapf chain an error onto a package-level sentinel so callers can
// test the result with errors.Is against the sentinel while still seeing the
// underlying cause in the formatted message.
package crex
