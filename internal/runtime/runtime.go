package runtime

import (
	"context"
	goruntime "runtime"

	containerd "github.com/containerd/containerd/v2/client"
	"github.com/cruciblehq/chariotd/internal/crex"
)

// Runtime wraps a containerd client and provides rootfs-backed container
// operations.
type Runtime struct {
	client *containerd.Client
}

// New creates a runtime connected to the containerd socket at address,
// scoped to namespace.
func New(address, namespace string) (*Runtime, error) {
	client, err := containerd.New(address, containerd.WithDefaultNamespace(namespace))
	if err != nil {
		return nil, crex.Wrap(ErrRuntime, err)
	}
	return &Runtime{client: client}, nil
}

// Close closes the containerd client connection.
func (rt *Runtime) Close() error {
	return rt.client.Close()
}

// StartFromRootfs creates and starts a container whose root filesystem is
// the directory at rootfsPath, with id as the containerd container ID. Any
// stale container with the same ID is removed first. The returned
// Container has a long-running process (sleep infinity) so that Exec/
// ExecShell calls have a running task to attach to.
func (rt *Runtime) StartFromRootfs(ctx context.Context, rootfsPath, id string) (*Container, error) {
	c := rt.NewFromRootfs(rootfsPath, id)
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// NewFromRootfs returns an unstarted Container bound to the directory at
// rootfsPath. Mounts may be added via AddMount before calling Start; the
// OCI spec is fixed once the container starts. Used when a recipe's stage
// executor needs a different mount set than the default (e.g. a source
// recipe re-scoping from the whole cache directory down to just its src
// tree between the fetch and patch/strap steps).
func (rt *Runtime) NewFromRootfs(rootfsPath, id string) *Container {
	return &Container{
		client:     rt.client,
		id:         id,
		platform:   defaultPlatform(),
		rootfsPath: rootfsPath,
	}
}

// Start creates and starts c's containerd task from its configured mount
// list. Any stale container with the same ID is removed first.
func (c *Container) Start(ctx context.Context) error {
	c.remove(ctx)

	ctr, err := c.create(ctx, c.rootfsPath)
	if err != nil {
		return crex.Wrap(ErrRuntime, err)
	}

	if err := c.startTask(ctx, ctr); err != nil {
		ctr.Delete(ctx)
		return crex.Wrap(ErrRuntime, err)
	}

	return nil
}

// Container returns a lightweight handle for an existing container by ID,
// not verified until first used.
func (rt *Runtime) Container(id string) *Container {
	return &Container{client: rt.client, id: id, platform: defaultPlatform()}
}

func defaultPlatform() string {
	return "linux/" + goruntime.GOARCH
}
