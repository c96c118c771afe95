// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version reports the build the server and tools were made from.
package version

import "runtime/debug"

// Info identifies a build. Fields are set via -ldflags -X in main.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
}

// String renders "v1.2.3 (abc1234)", "dev" for an unversioned build.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}
	if i.GitCommit == "" {
		return v
	}
	return v + " (" + i.GitCommit + ")"
}

// FromBuildInfo fills empty fields from the module build info that `go
// build` embeds, so binaries built without ldflags still report a commit.
func (i Info) FromBuildInfo() Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	if i.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}

	var revision, modified string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		}
	}
	if i.GitCommit == "" && revision != "" {
		i.GitCommit = revision[:min(7, len(revision))]
		if modified == "true" {
			i.GitCommit += "-dirty"
		}
	}
	return i
}
