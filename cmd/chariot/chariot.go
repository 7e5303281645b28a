// Command chariot is the CLI client: it parses a recipe file and either
// submits a build request to a running chariotd or, with --local, runs the
// build in-process.
package main

import (
	"log/slog"
	"os"

	"github.com/cruciblehq/chariotd/internal"
	"github.com/cruciblehq/chariotd/internal/cli"
	"github.com/cruciblehq/chariotd/internal/crex"
)

func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	if err := cli.ExecuteClient(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// logger creates a buffered logger seeded from build-time linker flags. It
// is reconfigured after flag parsing via cli.ExecuteClient.
func logger() *slog.Logger {
	handler := crex.NewHandler()
	handler.SetLevel(logLevel())
	return slog.New(handler.WithGroup(internal.Name))
}

func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
