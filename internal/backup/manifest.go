package backup

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"voiceswitch/internal/fileutil"
)

// ManifestFileName is the per-snapshot manifest written after a successful capture.
const ManifestFileName = "backup_info.txt"

const (
	keyBuildID  = "build_id"
	keyLangCode = "lang_code"
	keyFolders  = "folders"
	keyFiles    = "toc_files"
	listSep     = ";"
)

// Manifest is the persisted description of a snapshot.
type Manifest struct {
	BuildID  string
	LangCode string
	Folders  []string
	Files    []string
}

// Encode renders the manifest as key=value lines. Paths are stored with
// forward slashes so a snapshot reads the same on every platform.
func (m Manifest) Encode() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s=%s\n", keyBuildID, m.BuildID)
	fmt.Fprintf(&buf, "%s=%s\n", keyLangCode, m.LangCode)
	fmt.Fprintf(&buf, "%s=%s\n", keyFolders, joinPaths(m.Folders))
	fmt.Fprintf(&buf, "%s=%s\n", keyFiles, joinPaths(m.Files))
	return buf.Bytes()
}

// DecodeManifest parses key=value lines. Unknown keys and lines without '='
// are ignored.
func DecodeManifest(data []byte) Manifest {
	var m Manifest
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimRight(scanner.Text(), "\r"), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case keyBuildID:
			m.BuildID = strings.TrimSpace(value)
		case keyLangCode:
			m.LangCode = strings.TrimSpace(value)
		case keyFolders:
			m.Folders = splitPaths(value)
		case keyFiles:
			m.Files = splitPaths(value)
		}
	}
	return m
}

func readManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		return Manifest{}, err
	}
	return DecodeManifest(data), nil
}

func writeManifest(dir string, m Manifest) error {
	return fileutil.WriteFileAtomic(filepath.Join(dir, ManifestFileName), m.Encode(), 0o644)
}

func joinPaths(paths []string) string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	return strings.Join(out, listSep)
}

func splitPaths(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, listSep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, filepath.FromSlash(part))
		}
	}
	return out
}
