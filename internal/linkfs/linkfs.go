package linkfs

import (
	"errors"
	"io/fs"
	"os"
)

// ErrNotLink is returned by RemoveLink when the path is an ordinary entry.
var ErrNotLink = errors.New("not a directory link")

// Inspector answers the filesystem questions asset discovery needs.
type Inspector interface {
	Exists(path string) bool
	ReadDir(path string) ([]fs.DirEntry, error)
	IsLink(path string) bool
}

// LinkProvider creates and removes directory links. A link must redirect to
// its target without copying data and must be reported by IsLink.
type LinkProvider interface {
	CreateLink(target, linkPath string) error
	RemoveLink(linkPath string) error
	IsLink(path string) bool
}

// OS implements Inspector and LinkProvider against the host filesystem using the
// platform's native directory link primitive.
type OS struct{}

var (
	_ Inspector    = OS{}
	_ LinkProvider = OS{}
)

// Exists reports whether path resolves to an existing entry.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadDir lists path without following links inside it.
func (OS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// IsLink reports whether path is a directory link rather than an ordinary
// entry. A dangling link still counts so it can be replaced or removed.
func (OS) IsLink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return isLinkInfo(path, info)
}

// CreateLink makes linkPath redirect to target. linkPath must not exist.
func (OS) CreateLink(target, linkPath string) error {
	return createLink(target, linkPath)
}

// RemoveLink deletes the link at linkPath and never the directory it points to.
// It refuses with ErrNotLink when linkPath is an ordinary entry.
func (o OS) RemoveLink(linkPath string) error {
	if !o.IsLink(linkPath) {
		return &fs.PathError{Op: "removelink", Path: linkPath, Err: ErrNotLink}
	}
	return removeLink(linkPath)
}
