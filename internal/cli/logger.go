package cli

import (
	"log/slog"
	"os"

	"github.com/cruciblehq/chariotd/internal"
	"github.com/cruciblehq/chariotd/internal/crex"
)

// configureLogger reconfigures the global crex handler once flags are
// known, the same two-phase init/commit split the daemon and client share:
// a handler exists (and buffers) before flags are parsed, then gets its
// final level/formatter/stream here.
func configureLogger(debugFlag, quietFlag, verboseFlag bool) {
	handler, ok := slog.Default().Handler().(crex.Handler)
	if !ok {
		return
	}

	debug := debugFlag || internal.IsDebug()
	quiet := quietFlag || internal.IsQuiet()
	verbose := verboseFlag || internal.IsVerbose()

	formatter := crex.NewPrettyFormatter(isatty(os.Stderr))
	formatter.SetVerbose(verbose)

	switch {
	case debug:
		handler.SetLevel(slog.LevelDebug)
	case quiet:
		handler.SetLevel(slog.LevelWarn)
	default:
		handler.SetLevel(slog.LevelInfo)
	}

	handler.SetFormatter(formatter)
	handler.SetStream(os.Stderr)
	handler.Flush()
}

func isatty(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
