package variantkit

import (
	"log"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		path = filepath.Join(usr.HomeDir, (path)[2:])
	}

	return path
}

// OutputPath joins a caller-supplied prefix with a fixed suffix. Prefixes are
// concatenated verbatim (no separator is inserted) so that both "out/" and
// "out/run1_" behave as users expect.
func OutputPath(prefix, suffix string) string {
	return ExpandHome(prefix) + suffix
}
