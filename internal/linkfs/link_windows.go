//go:build windows

package linkfs

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

var command = exec.Command

// isLinkInfo accepts directory reparse points: junctions and directory
// symlinks. File symlinks carry no directory attribute and are ordinary entries.
func isLinkInfo(_ string, info fs.FileInfo) bool {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false
	}
	attrs := data.FileAttributes
	return attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 && attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0
}

// createLink makes an NTFS junction, which needs no elevation unlike symlinks.
func createLink(target, linkPath string) error {
	cmd := command("cmd", "/C", "mklink", "/J", linkPath, target) //nolint:gosec
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return &fs.PathError{Op: "mklink", Path: linkPath, Err: fmt.Errorf("%s: %w", detail, err)}
	}
	return nil
}

// removeLink deletes the junction itself; RemoveDirectory does not touch the target.
func removeLink(linkPath string) error {
	pathp, err := windows.UTF16PtrFromString(linkPath)
	if err != nil {
		return &fs.PathError{Op: "removelink", Path: linkPath, Err: err}
	}
	if err := windows.RemoveDirectory(pathp); err != nil {
		if fileErr := os.Remove(linkPath); fileErr == nil {
			return nil
		}
		return &fs.PathError{Op: "removelink", Path: linkPath, Err: err}
	}
	return nil
}
