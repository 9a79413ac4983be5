//go:build !windows

package steam

import (
	"os"
	"path/filepath"
)

const defaultMarker = "steam.sh"

func defaultCandidateRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}
	return []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".steam", "root"),
		filepath.Join(home, ".local", "share", "Steam"),
	}
}
