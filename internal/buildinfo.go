// Package internal holds build metadata and global runtime flags shared by
// the chariot CLI and the chariotd daemon.
package internal

import (
	"fmt"
	"runtime"
	"strings"
)

// Name is used for directory naming, logger groups, and the kong app name.
const Name = "chariot"

const (
	defaultUndefined  = "(undefined)"
	defaultLocalBuild = "(local)"
	mainBranch        = "main"
)

var (
	version   = "" // Version number (e.g., "1.2.3"), set via linker flags.
	stage     = "" // Development stage or git branch (e.g., "staging", "main").
	gitCommit = "" // Git commit hash (e.g., "a1b2c3d4").

	rawQuiet   = "false"
	rawDebug   = "false"
	rawVerbose = "false"
)

// Version returns the current version, stripped of a leading "v" and
// lower-cased. Returns "(undefined)" if unset.
func Version() string {
	v := strings.TrimSpace(version)
	if v == "" {
		return defaultUndefined
	}
	return strings.TrimPrefix(strings.ToLower(v), "v")
}

// Stage returns the development stage (e.g. the git branch used for the
// build). Returns "(undefined)" if unset.
func Stage() string {
	s := strings.TrimSpace(stage)
	if s == "" {
		return defaultUndefined
	}
	return strings.ToLower(s)
}

// GitCommit returns the git commit hash. Returns "(undefined)" if unset.
func GitCommit() string {
	c := strings.TrimSpace(gitCommit)
	if c == "" {
		return defaultUndefined
	}
	return c
}

// Arch returns the build architecture.
func Arch() string {
	return runtime.GOARCH
}

// IsLocal reports whether this is a local (non-pipeline) build: any of
// version, commit, or stage were left unset by the linker.
func IsLocal() bool {
	return strings.TrimSpace(version) == "" ||
		strings.TrimSpace(gitCommit) == "" ||
		strings.TrimSpace(stage) == ""
}

// VersionString returns a detailed version string, or "(local)" for local
// builds. Pipeline builds format as "<version>[+<stage>] <commit> [<arch>]".
func VersionString() string {
	if IsLocal() {
		return defaultLocalBuild
	}

	s := Stage()
	if s == mainBranch {
		s = ""
	} else {
		s = "+" + s
	}

	return fmt.Sprintf("%s%s %s [%s]", Version(), s, GitCommit(), Arch())
}
