package alfafreq

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome replaces a leading ~/ in a local output path with the current
// user's home directory. Any other path, including gs:// paths, is returned
// as given.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", pfx.Err(fmt.Errorf("expanding %s: %w", path, err))
	}

	return filepath.Join(usr.HomeDir, path[2:]), nil
}
