package runtime

import (
	"context"
	"log/slog"
	"syscall"

	containerd "github.com/containerd/containerd/v2/client"
	"github.com/containerd/containerd/v2/core/containers"
	"github.com/containerd/containerd/v2/pkg/cio"
	"github.com/containerd/containerd/v2/pkg/oci"
	"github.com/containerd/errdefs"
	"github.com/cruciblehq/chariotd/internal/crex"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

// ociRuntime is the OCI runtime shim used to run containers.
const ociRuntime = "io.containerd.runc.v2"

// Mount is a single bind mount applied to a container's OCI spec in
// insertion order; a later mount at the same container path shadows an
// earlier one, matching how the OCI runtime applies its mount list.
type Mount struct {
	Host      string
	Container string
	ReadOnly  bool
}

// Container is a running build container whose root filesystem is a
// directory on disk rather than a containerd-managed snapshot.
type Container struct {
	client     *containerd.Client
	id         string
	platform   string
	rootfsPath string

	mounts     []Mount
	cwd        string
	silenceOut bool
	silenceErr bool
	started    bool
}

// AddMount appends a bind mount to the container's mount list. Mounts
// added between Runtime.NewFromRootfs and Start take effect; adding one
// after the container is created (by Start or Runtime.StartFromRootfs)
// returns ErrMountOrder since the OCI spec is fixed at container creation.
func (c *Container) AddMount(host, container string, readOnly bool) error {
	if c.started {
		return ErrMountOrder
	}
	c.mounts = append(c.mounts, Mount{Host: host, Container: container, ReadOnly: readOnly})
	return nil
}

// ClearMounts removes every previously added mount.
func (c *Container) ClearMounts() error {
	if c.started {
		return ErrMountOrder
	}
	c.mounts = nil
	return nil
}

// SetCwd sets the working directory for subsequent Exec/ExecShell calls.
func (c *Container) SetCwd(path string) { c.cwd = path }

// SetSilence controls whether Exec/ExecShell discard stdout/stderr instead
// of capturing them.
func (c *Container) SetSilence(stdout, stderr bool) {
	c.silenceOut = stdout
	c.silenceErr = stderr
}

// Status reports the container's lifecycle state.
type Status int

const (
	NotCreated Status = iota
	Stopped
	Running
)

func (c *Container) Status(ctx context.Context) (Status, error) {
	ctr, err := c.client.LoadContainer(ctx, c.id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return NotCreated, nil
		}
		return NotCreated, crex.Wrap(ErrRuntime, err)
	}

	task, err := ctr.Task(ctx, nil)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return Stopped, nil
		}
		return NotCreated, crex.Wrap(ErrRuntime, err)
	}

	status, err := task.Status(ctx)
	if err != nil {
		return NotCreated, crex.Wrap(ErrRuntime, err)
	}
	if status.Status == containerd.Running {
		return Running, nil
	}
	return Stopped, nil
}

// Stop kills and removes the container's task, leaving its metadata
// intact. Stopping an already-stopped container is not an error.
func (c *Container) Stop(ctx context.Context) error {
	ctr, err := c.client.LoadContainer(ctx, c.id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return nil
		}
		return crex.Wrap(ErrRuntime, err)
	}

	task, err := ctr.Task(ctx, nil)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return nil
		}
		return crex.Wrap(ErrRuntime, err)
	}

	task.Kill(ctx, syscall.SIGKILL)
	if _, err := task.Delete(ctx, containerd.WithProcessKill); err != nil && !errdefs.IsNotFound(err) {
		return crex.Wrap(ErrRuntime, err)
	}
	return nil
}

// Destroy removes the container and its task. The rootfs directory it was
// created from is left untouched; the image package owns that lifecycle.
func (c *Container) Destroy(ctx context.Context) {
	ctr, err := c.client.LoadContainer(ctx, c.id)
	if err != nil {
		if !errdefs.IsNotFound(err) {
			slog.Warn("failed to load container for destruction", "id", c.id, "error", err)
		}
		return
	}

	if task, err := ctr.Task(ctx, nil); err == nil {
		task.Kill(ctx, syscall.SIGKILL)
		task.Delete(ctx, containerd.WithProcessKill)
	}

	if err := ctr.Delete(ctx); err != nil && !errdefs.IsNotFound(err) {
		slog.Warn("failed to delete container during destruction", "id", c.id, "error", err)
	}
}

func (c *Container) create(ctx context.Context, rootfsPath string) (containerd.Container, error) {
	opts := []oci.SpecOpts{
		oci.WithDefaultSpecForPlatform(c.platform),
		oci.WithRootFSPath(rootfsPath),
		oci.WithHostNamespace(specs.NetworkNamespace),
		oci.WithHostResolvconf,
		oci.WithProcessArgs("sleep", "infinity"),
	}
	for _, m := range c.mounts {
		opts = append(opts, withBindMount(m))
	}

	ctr, err := c.client.NewContainer(ctx, c.id,
		containerd.WithRuntime(ociRuntime, nil),
		containerd.WithNewSpec(opts...),
	)
	if err != nil {
		return nil, err
	}
	c.started = true
	return ctr, nil
}

func withBindMount(m Mount) oci.SpecOpts {
	return func(_ context.Context, _ oci.Client, _ *containers.Container, s *specs.Spec) error {
		options := []string{"rbind"}
		if m.ReadOnly {
			options = append(options, "ro")
		} else {
			options = append(options, "rw")
		}
		s.Mounts = append(s.Mounts, specs.Mount{
			Destination: m.Container,
			Source:      m.Host,
			Type:        "bind",
			Options:     options,
		})
		return nil
	}
}

func (c *Container) startTask(ctx context.Context, ctr containerd.Container) error {
	task, err := ctr.NewTask(ctx, cio.NullIO)
	if err != nil {
		return err
	}
	if err := task.Start(ctx); err != nil {
		task.Delete(ctx)
		return err
	}
	return nil
}

func (c *Container) remove(ctx context.Context) {
	existing, err := c.client.LoadContainer(ctx, c.id)
	if err != nil {
		return
	}
	if task, err := existing.Task(ctx, nil); err == nil {
		task.Kill(ctx, syscall.SIGKILL)
		task.Delete(ctx, containerd.WithProcessKill)
	}
	existing.Delete(ctx)
}
