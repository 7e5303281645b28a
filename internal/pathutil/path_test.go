package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present")
	if err := os.WriteFile(present, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want Presence
	}{
		{name: "present file", path: present, want: Present},
		{name: "absent file", path: filepath.Join(dir, "missing"), want: Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Exists(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleanRecreatesEmpty(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "scratch")
	if err := os.MkdirAll(filepath.Join(target, "leftover"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := Clean(target); err != nil {
		t.Fatalf("Clean: %v", err)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty directory, got %d entries", len(entries))
	}
}

func TestLinkRecursive(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "file.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "clone")
	if err := LinkRecursive(dest, src); err != nil {
		t.Fatalf("LinkRecursive: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "sub", "file.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("got %q, want %q", data, "hello")
	}

	srcInfo, err := os.Stat(filepath.Join(src, "sub", "file.txt"))
	if err != nil {
		t.Fatal(err)
	}
	destInfo, err := os.Stat(filepath.Join(dest, "sub", "file.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !os.SameFile(srcInfo, destInfo) {
		t.Fatal("expected hard-linked file to share the same inode")
	}
}

func TestCopyWarnConflicts(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "file.txt"), []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "file.txt"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Copy(dest, src, true); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "file.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old" {
		t.Fatalf("expected existing file preserved, got %q", data)
	}
}

func TestTempDirClose(t *testing.T) {
	td, err := NewTempDir("", "chariot-test-")
	if err != nil {
		t.Fatalf("NewTempDir: %v", err)
	}
	path := td.Path()
	if err := td.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if presence, err := Exists(path); err != nil {
		t.Fatal(err)
	} else if presence != Absent {
		t.Fatal("expected directory removed after Close")
	}
}
