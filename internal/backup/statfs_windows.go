//go:build windows

package backup

import "golang.org/x/sys/windows"

func volumeStats(path string) (uint64, uint64, error) {
	pathp, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0, err
	}
	var free, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(pathp, &free, &total, &totalFree); err != nil {
		return 0, 0, err
	}
	return total, free, nil
}
