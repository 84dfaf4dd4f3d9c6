// Package compileinfo reports which revision of variantkit a binary was built
// from, so that output files can be traced back to the code that produced
// them.
package compileinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
)

type CompileInfo struct {
	Binary     string
	Package    string
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

	commit := c.Commit
	if commit == "" {
		commit = "(unknown)"
	}

	return fmt.Sprintf("This %s binary (%s) was built with %s at commit %v at time %v.%s", c.Binary, c.Package, c.GoVersion, commit, c.CommitTime, mod)
}

func Get() CompileInfo {
	out := CompileInfo{}
	if len(os.Args) > 0 {
		out.Binary = filepath.Base(os.Args[0])
	}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
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
