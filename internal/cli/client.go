package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/chariotd/internal"
	"github.com/cruciblehq/chariotd/internal/build"
	"github.com/cruciblehq/chariotd/internal/crex"
	"github.com/cruciblehq/chariotd/internal/image"
	"github.com/cruciblehq/chariotd/internal/paths"
	"github.com/cruciblehq/chariotd/internal/protocol"
	"github.com/cruciblehq/chariotd/internal/runtime"
	"github.com/cruciblehq/chariotd/internal/server"
)

// ClientCmd is chariot, the CLI client. It either submits a build request
// to a running chariotd over its Unix socket, or (with --local) runs the
// build in-process, sharing exactly the request-resolution path
// (build.ResolveRequest) and orchestrator (build.Run) the daemon uses.
type ClientCmd struct {
	Config        string            `help:"Recipe file to build from." default:"./config.chariot" placeholder:"PATH"`
	Cache         string            `help:"Override the build cache root." placeholder:"PATH"`
	Exec          string            `help:"Shell the base image and exit." placeholder:"CMD"`
	Verbose       bool              `short:"v" help:"Enable verbose output."`
	Quiet         bool              `short:"q" help:"Suppress informational output."`
	Debug         bool              `short:"d" help:"Enable debug output."`
	HideConflicts bool              `help:"Suppress copy-over-existing warnings."`
	Var           map[string]string `help:"User-defined embedder variable (reserved names refused)." placeholder:"KEY=VALUE"`
	WipeContainer bool              `help:"Delete and reinstall the base image."`
	CleanCache    bool              `help:"Wipe the cache/ of every host/target recipe built in this run."`
	ThreadCount   int               `help:"Sets the thread_count variable."`
	Local         bool              `help:"Build in-process without a daemon."`
	Socket        string            `short:"s" help:"Override the default Unix socket path." placeholder:"PATH"`
	Recipes       []string          `arg:"" optional:"" help:"Recipes to force-rebuild (namespace/name)."`
}

// ExecuteClient parses arguments, configures logging, and runs chariot.
func ExecuteClient() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cmd ClientCmd
	kongCtx := kong.Parse(&cmd,
		kong.Name("chariot"),
		kong.Description("Reproducible containerized cross-compilation."),
		kong.UsageOnError(),
		kong.Vars{"version": internal.VersionString()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger(cmd.Debug, cmd.Quiet, cmd.Verbose)

	return kongCtx.Run()
}

func (c *ClientCmd) Run(ctx context.Context) error {
	if c.Exec != "" {
		return c.runExec(ctx)
	}

	req := protocol.BuildRequest{
		ConfigPath:    c.Config,
		CacheRoot:     c.Cache,
		Forced:        c.Recipes,
		Vars:          c.Var,
		HideConflicts: c.HideConflicts,
		CleanCache:    c.CleanCache,
		WipeContainer: c.WipeContainer,
		ThreadCount:   c.ThreadCount,
	}

	if c.Local {
		return c.runLocal(ctx, req)
	}
	return c.runRemote(req)
}

// runLocal resolves and runs req in-process, without a daemon, using the
// same build.ResolveRequest/build.Run path the daemon's handleBuild uses.
func (c *ClientCmd) runLocal(ctx context.Context, req protocol.BuildRequest) error {
	forced, opts, err := build.ResolveRequest(req)
	if err != nil {
		return err
	}

	rt, err := runtime.New(server.DefaultContainerdAddress, server.DefaultContainerdNamespace)
	if err != nil {
		return err
	}
	defer rt.Close()

	cache := image.NewCache(opts.CacheRoot, rt)
	if req.WipeContainer {
		if err := cache.WipeBase(); err != nil {
			return err
		}
	}
	if err := cache.EnsureBase(ctx); err != nil {
		return err
	}

	result, err := build.Run(ctx, rt, cache, forced, opts)
	if err != nil {
		return err
	}

	printBuilt(result.Built)
	return nil
}

// runRemote submits req to the daemon listening on the configured socket.
func (c *ClientCmd) runRemote(req protocol.BuildRequest) error {
	socketPath := c.Socket
	if socketPath == "" {
		socketPath = paths.Socket()
	}

	env, payload, err := request(socketPath, protocol.CmdBuild, req)
	if err != nil {
		return err
	}

	switch env.Command {
	case protocol.CmdOK:
		result, err := protocol.DecodePayload[protocol.BuildResult](payload)
		if err != nil {
			return err
		}
		printBuilt(result.Built)
		return nil
	case protocol.CmdError:
		errResult, err := protocol.DecodePayload[protocol.ErrorResult](payload)
		if err != nil {
			return err
		}
		return crex.Wrapf(ErrClient, "%s", errResult.Message)
	default:
		return crex.Wrapf(ErrClient, "unexpected response command: %s", env.Command)
	}
}

// runExec starts the base image and shells command inside it, printing its
// output and exiting with its exit code. This bypasses the daemon: the
// socket protocol carries only build/status/shutdown commands, and a
// one-off shell is a local diagnostic operation rather than a build.
func (c *ClientCmd) runExec(ctx context.Context) error {
	cacheRoot := c.Cache
	if cacheRoot == "" {
		cacheRoot = paths.CacheRoot()
	}

	rt, err := runtime.New(server.DefaultContainerdAddress, server.DefaultContainerdNamespace)
	if err != nil {
		return err
	}
	defer rt.Close()

	cache := image.NewCache(cacheRoot, rt)
	if err := cache.EnsureBase(ctx); err != nil {
		return err
	}

	rootfsPath, err := cache.Resolve(ctx, nil)
	if err != nil {
		return err
	}

	ctr := rt.NewFromRootfs(rootfsPath, "chariot-exec")
	if err := ctr.Start(ctx); err != nil {
		return err
	}
	defer ctr.Destroy(ctx)

	result, err := ctr.ExecShell(ctx, c.Exec)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, result.Stdout)
	fmt.Fprint(os.Stderr, result.Stderr)
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
	return nil
}

func printBuilt(built []string) {
	if len(built) == 0 {
		fmt.Println("nothing to build")
		return
	}
	for _, key := range built {
		fmt.Println(key)
	}
}
