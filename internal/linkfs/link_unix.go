//go:build !windows

package linkfs

import (
	"errors"
	"io/fs"
	"os"
)

// isLinkInfo accepts a symlink whose target is a directory or no longer
// exists. A symlink to a regular file is an ordinary entry.
func isLinkInfo(path string, info fs.FileInfo) bool {
	if info.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	if err != nil {
		return errors.Is(err, fs.ErrNotExist)
	}
	return target.IsDir()
}

func createLink(target, linkPath string) error {
	return os.Symlink(target, linkPath)
}

func removeLink(linkPath string) error {
	return os.Remove(linkPath)
}
