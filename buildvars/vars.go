// Copyright (c) 2026 Red Hat, Inc.
// quipucords - inventory and discovery of remote hosts
// This software is licensed under the GNU General Public License, version 3 (GPLv3).

// Package buildvars holds values injected by the linker.
package buildvars

// Version is set with
// `-ldflags -X github.com/quipucords/quipucords/buildvars.Version=...`.
// Empty for development builds.
var Version string

// Commit is the VCS revision the binary was built from, if known.
var Commit string

// VersionOrDefault returns Version, or def when Version is unset.
func VersionOrDefault(def string) string {
	if Version != "" {
		return Version
	}
	return def
}

// String renders the version with the commit appended when known.
func String() string {
	v := VersionOrDefault("dev")
	if Commit != "" {
		return v + " (" + Commit + ")"
	}
	return v
}
