package assets

import (
	"path/filepath"
	"slices"

	"voiceswitch/internal/linkfs"
)

// FolderNames returns the directory names that hold assets for code.
func FolderNames(code string) [2]string {
	return [2]string{code, "vo" + code}
}

// FileNames returns the control file names paired with code's folders.
func FileNames(code string) [2]string {
	return [2]string{code + ".toc", "vo" + code + ".toc"}
}

// Set is the result of one scan: language folders and control files for a
// code, as paths relative to the scanned root. The zero value means "not
// scanned"; a scan that matched nothing yields an empty but scanned Set.
type Set struct {
	Root string
	Code string

	folders map[string]struct{}
	files   map[string]struct{}
	links   map[string]struct{}
}

func newSet(root, code string) Set {
	return Set{
		Root:    root,
		Code:    code,
		folders: make(map[string]struct{}),
		files:   make(map[string]struct{}),
		links:   make(map[string]struct{}),
	}
}

// Empty reports whether no folders and no files were matched.
func (s Set) Empty() bool { return len(s.folders) == 0 && len(s.files) == 0 }

func (s Set) FolderCount() int { return len(s.folders) }

func (s Set) FileCount() int { return len(s.files) }

// Folders returns the matched folder paths in lexical order.
func (s Set) Folders() []string { return sortedKeys(s.folders) }

// Files returns the matched control file paths in lexical order.
func (s Set) Files() []string { return sortedKeys(s.files) }

// LinkFolders returns the matched folders that were link points.
func (s Set) LinkFolders() []string { return sortedKeys(s.links) }

// WithoutLinkFolders returns a copy that drops folders which were link points.
func (s Set) WithoutLinkFolders() Set {
	out := newSet(s.Root, s.Code)
	for rel := range s.folders {
		if _, linked := s.links[rel]; !linked {
			out.folders[rel] = struct{}{}
		}
	}
	for rel := range s.files {
		out.files[rel] = struct{}{}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}
	slices.Sort(out)
	return out
}

// Locator scans directory trees for a language's assets.
type Locator struct {
	fsys linkfs.Inspector
}

// NewLocator returns a Locator backed by fsys, or by the host filesystem when nil.
func NewLocator(fsys linkfs.Inspector) *Locator {
	if fsys == nil {
		fsys = linkfs.OS{}
	}
	return &Locator{fsys: fsys}
}

// Locate walks root depth-first. Matching directories are recorded and not
// entered; link points are never entered; other directories are searched.
// Unreadable directories are skipped.
func (l *Locator) Locate(root, code string) Set {
	set := newSet(root, code)
	folderNames := FolderNames(code)
	fileNames := FileNames(code)
	l.walk(root, "", folderNames, fileNames, &set)
	return set
}

func (l *Locator) walk(dir, rel string, folderNames, fileNames [2]string, set *Set) {
	entries, err := l.fsys.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		relPath := filepath.Join(rel, name)
		isLink := l.fsys.IsLink(path)

		if entry.IsDir() || isLink {
			switch {
			case slices.Contains(folderNames[:], name):
				set.folders[relPath] = struct{}{}
				if isLink {
					set.links[relPath] = struct{}{}
				}
			case !isLink:
				l.walk(path, relPath, folderNames, fileNames, set)
			}
			continue
		}
		if slices.Contains(fileNames[:], name) {
			set.files[relPath] = struct{}{}
		}
	}
}
