// Command chariotd is the build daemon: it owns the containerd client and
// image cache for the process lifetime and serves build requests from the
// chariot CLI over a Unix domain socket.
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

	slog.Debug("chariotd is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.ExecuteDaemon(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// logger creates a buffered logger seeded from build-time linker flags. It
// is reconfigured after flag parsing via cli.ExecuteDaemon.
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

func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
