package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/chariotd/internal"
	"github.com/cruciblehq/chariotd/internal/server"
)

// DaemonCmd is the root command for the chariotd daemon.
var DaemonCmd struct {
	Quiet   bool             `short:"q" help:"Suppress informational output."`
	Verbose bool             `short:"v" help:"Enable verbose output."`
	Debug   bool             `short:"d" help:"Enable debug output."`
	Socket  string           `short:"s" help:"Override the default Unix socket path." placeholder:"PATH"`
	Start   daemonStartCmd   `cmd:"" help:"Start the daemon."`
	Version daemonVersionCmd `cmd:"" help:"Show version information."`
}

// ExecuteDaemon parses arguments, configures logging, and runs the
// selected chariotd subcommand.
func ExecuteDaemon() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&DaemonCmd,
		kong.Name("chariotd"),
		kong.Description("The chariot build daemon.\n\nListens on a Unix domain socket for build commands from the chariot CLI."),
		kong.UsageOnError(),
		kong.Vars{"version": internal.VersionString()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger(DaemonCmd.Debug, DaemonCmd.Quiet, DaemonCmd.Verbose)

	return kongCtx.Run()
}

type daemonStartCmd struct{}

// Run starts the Unix-socket server and blocks until the context is
// cancelled (SIGINT/SIGTERM) or a shutdown command stops the server.
func (c *daemonStartCmd) Run(ctx context.Context) error {
	srv, err := server.New(server.Config{SocketPath: DaemonCmd.Socket})
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}

	slog.Info("chariotd is running")

	stopped := make(chan struct{})
	go func() {
		srv.Wait()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		return srv.Stop()
	case <-stopped:
		return nil
	}
}

type daemonVersionCmd struct{}

func (c *daemonVersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
