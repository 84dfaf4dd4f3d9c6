// compileinfoprint is imported by every variantkit command for the side effect
// of printing the compileinfo to os.Stderr before any work starts.
package compileinfoprint

import "github.com/carbocation/variantkit/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
