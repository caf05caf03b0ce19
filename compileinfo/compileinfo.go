// Package compileinfo reports which commit a binary was built from, so that
// GAPIT inputs can be traced back to the code that produced them.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
)

type CompileInfo struct {
	Tool       string
	Package    string
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

	version := ""
	if c.Version != "" && c.Version != "(devel)" {
		version = " version " + c.Version
	}

	return fmt.Sprintf("This %s binary (%s%s) was built with %s at commit %v at time %v.%s", c.Tool, c.Package, version, c.GoVersion, c.Commit, c.CommitTime, mod)
}

func Get() CompileInfo {
	out := CompileInfo{
		Tool: filepath.Base(os.Args[0]),
	}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
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

// Fprint writes the build description of the running binary to w.
func Fprint(w io.Writer) error {
	_, err := fmt.Fprintln(w, Get())
	return err
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
