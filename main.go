package main

import (
	"runtime/debug"

	"github.com/marcus/chaoskb/cmd"
)

// Version is injected with -ldflags "-X main.Version=vX.Y.Z".
var Version = "dev"

// resolveVersion prefers an injected version, then the module version that
// `go install pkg@version` records, then a devel+<rev>[+dirty] string built
// from VCS stamps.
func resolveVersion(injected string, info *debug.BuildInfo) string {
	if injected != "dev" && injected != "" {
		return injected
	}
	if info == nil {
		return injected
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	rev := settings["vcs.revision"]
	if rev == "" {
		return injected
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	v := "devel+" + rev
	if settings["vcs.modified"] == "true" {
		v += "+dirty"
	}
	return v
}

func main() {
	info, _ := debug.ReadBuildInfo()
	cmd.SetVersion(resolveVersion(Version, info))
	cmd.Execute()
}
