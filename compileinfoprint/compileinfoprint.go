// compileinfoprint is imported by commands for the side effect of printing the
// build provenance to os.Stderr before main runs
package compileinfoprint

import "github.com/carbocation/gapitprep/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
