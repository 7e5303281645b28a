package runtime

import "testing"

func TestAddMountOrderPreserved(t *testing.T) {
	c := &Container{}
	if err := c.AddMount("/host/a", "/chariot/a", true); err != nil {
		t.Fatalf("AddMount: %v", err)
	}
	if err := c.AddMount("/host/b", "/chariot/a", false); err != nil {
		t.Fatalf("AddMount: %v", err)
	}

	if len(c.mounts) != 2 {
		t.Fatalf("got %d mounts, want 2", len(c.mounts))
	}
	if c.mounts[0].Host != "/host/a" || c.mounts[1].Host != "/host/b" {
		t.Fatal("expected mounts preserved in insertion order")
	}
}

func TestAddMountAfterStartRejected(t *testing.T) {
	c := &Container{started: true}
	if err := c.AddMount("/host/a", "/chariot/a", false); err != ErrMountOrder {
		t.Fatalf("expected ErrMountOrder, got %v", err)
	}
}

func TestClearMounts(t *testing.T) {
	c := &Container{mounts: []Mount{{Host: "/host/a", Container: "/chariot/a"}}}
	if err := c.ClearMounts(); err != nil {
		t.Fatalf("ClearMounts: %v", err)
	}
	if len(c.mounts) != 0 {
		t.Fatal("expected mounts cleared")
	}
}

func TestNextExecID(t *testing.T) {
	a := nextExecID()
	b := nextExecID()
	if a == b {
		t.Fatal("expected distinct exec IDs")
	}
}

func TestDefaultPlatform(t *testing.T) {
	if defaultPlatform() == "" {
		t.Fatal("expected a non-empty default platform")
	}
}
