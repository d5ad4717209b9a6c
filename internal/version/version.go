// Package version resolves the running build's version and how it was installed.
package version

import (
	"fmt"
	"runtime/debug"
)

// Effective returns v, falling back to Go build info when v is empty.
func Effective(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) string {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision == "" {
		return "devel"
	}
	ver := "devel+" + shortRevision(revision)
	if dirty {
		ver += "+dirty"
	}
	return ver
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// UpgradeCommand is the hint printed by `notecard version` for method.
func UpgradeCommand(version string, method InstallMethod) string {
	switch method {
	case InstallMethodHomebrew:
		return "brew upgrade notecard"
	case InstallMethodBinary:
		return "https://github.com/marcus/notecard/releases"
	default:
		if version == "" || version == "unknown" || version == "devel" {
			version = "latest"
		}
		return fmt.Sprintf("go install github.com/marcus/notecard/cmd/notecard@%s", version)
	}
}
