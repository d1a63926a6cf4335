// Package compileinfo reports how the running binary was built, so that
// plots and tables can be traced back to a commit and so that requests to the
// ALFA service identify the client that made them.
package compileinfo

import (
	"fmt"
	"os"
	"path"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s binary was built with %s at commit %v at time %v.%s", c.Package, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// UserAgent is suitable for an HTTP User-Agent header, e.g.
// "mafplot/v0.1.0 (3f2a9c1)".
func (c CompileInfo) UserAgent() string {
	name := path.Base(c.Package)
	if name == "" || name == "." || name == "/" {
		name = "alfafreq"
	}

	version := c.Version
	if version == "" {
		version = "(devel)"
	}

	if commit := c.Commit; commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		return fmt.Sprintf("%s/%s (%s)", name, version, commit)
	}

	return fmt.Sprintf("%s/%s", name, version)
}

func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	out.Module = z.Main.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	z := Get()
	fmt.Fprintf(os.Stderr, "%s\n", z)
}
