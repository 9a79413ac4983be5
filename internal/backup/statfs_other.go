//go:build !linux && !darwin && !freebsd && !windows

package backup

import "errors"

func volumeStats(string) (uint64, uint64, error) {
	return 0, 0, errors.New("volume statistics unsupported on this platform")
}
