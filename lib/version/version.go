// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// ModulePath is the import path of this module as recorded in build
// information.
const ModulePath = "github.com/bureau-foundation/dagcbor"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info returns a formatted version string suitable for --version output.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return GitCommit
}

// Module returns the version of the module at path as recorded in the
// running binary's build information. A replaced module reports the
// replacement's version. The main module reports its own version,
// which is "(devel)" for untagged builds. The result is empty when
// build information is unavailable or the module is not linked in.
func Module(path string) string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	if info.Main.Path == path {
		return info.Main.Version
	}
	for _, dependency := range info.Deps {
		if dependency.Path != path {
			continue
		}
		if dependency.Replace != nil {
			return dependency.Replace.Version
		}
		return dependency.Version
	}
	return ""
}

// Self returns the version of this module as seen by [Module], falling
// back to [Version] when the build records none or records "(devel)".
func Self() string {
	recorded := Module(ModulePath)
	if recorded == "" || recorded == "(devel)" {
		return Version
	}
	return recorded
}
