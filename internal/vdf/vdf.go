package vdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxLineBytes = 1 << 20

// ExtractValue returns the fourth quote-delimited segment of line, which is the
// value in a `"key"  "value"` pair.
func ExtractValue(line string) (string, bool) {
	parts := strings.Split(line, `"`)
	if len(parts) < 4 {
		return "", false
	}
	return parts[3], true
}

// Value returns the value on line when the line carries the quoted key.
func Value(line, key string) (string, bool) {
	if !strings.Contains(line, `"`+key+`"`) {
		return "", false
	}
	return ExtractValue(line)
}

// EachLine calls fn for every line of r.
func EachLine(r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan vdf: %w", err)
	}
	return nil
}

// LibraryPaths returns every "path" value from a library folders descriptor in
// file order. Doubled backslashes are collapsed to one.
func LibraryPaths(r io.Reader) ([]string, error) {
	var paths []string
	err := EachLine(r, func(line string) {
		value, ok := Value(line, "path")
		if !ok {
			return
		}
		value = strings.ReplaceAll(value, `\\`, `\`)
		if value != "" {
			paths = append(paths, value)
		}
	})
	return paths, err
}

// AppManifest holds the fields read from an appmanifest_<id>.acf file.
type AppManifest struct {
	InstallDir string
	BuildID    string
}

// Complete reports whether both the install directory and build id are known.
func (m AppManifest) Complete() bool {
	return m.InstallDir != "" && m.BuildID != ""
}

// ParseAppManifest reads installdir and buildid. A later matching line replaces
// an earlier one; a matching line without a value clears the field.
func ParseAppManifest(r io.Reader) (AppManifest, error) {
	var manifest AppManifest
	err := EachLine(r, func(line string) {
		switch {
		case strings.Contains(line, `"installdir"`):
			manifest.InstallDir, _ = ExtractValue(line)
		case strings.Contains(line, `"buildid"`):
			manifest.BuildID, _ = ExtractValue(line)
		}
	})
	return manifest, err
}
