package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"voiceswitch/internal/assets"
	"voiceswitch/internal/fileutil"
	"voiceswitch/internal/language"
	"voiceswitch/internal/linkfs"
	"voiceswitch/internal/logging"
	"voiceswitch/internal/services"
)

const component = "backup"

// Record describes one stored snapshot.
type Record struct {
	Code    string   `json:"code"`
	BuildID string   `json:"build_id"`
	Folders []string `json:"folders"`
	Files   []string `json:"toc_files"`
	Path    string   `json:"path"`
	// ManifestRead is false when the manifest was missing or unreadable;
	// BuildID is then empty and treated as unknown.
	ManifestRead bool `json:"manifest_read"`
}

// Counts reports how many folders and control files an operation touched.
type Counts struct {
	Folders int `json:"folders"`
	Files   int `json:"files"`
}

// statfsFunc allows tests to stub filesystem stats.
type statfsFunc func(path string) (total uint64, free uint64, err error)

// The copy and remove fields let tests fail a capture at a chosen step.
type (
	copyTreeFunc  func(src, dst string) ([]string, error)
	copyFileFunc  func(src, dst string) error
	removeAllFunc func(path string) error
)

// Store keeps one snapshot directory per language code under a backup root.
type Store struct {
	root    string
	locator *assets.Locator
	fsys    linkfs.Inspector
	logger  *slog.Logger
	statfs  statfsFunc

	copyTree  copyTreeFunc
	copyFile  copyFileFunc
	removeAll removeAllFunc
}

// NewStore creates a store rooted at root. A nil inspector uses the host filesystem.
func NewStore(root string, fsys linkfs.Inspector, logger *slog.Logger) *Store {
	if fsys == nil {
		fsys = linkfs.OS{}
	}
	return &Store{
		root:    root,
		locator: assets.NewLocator(fsys),
		fsys:    fsys,
		logger:  logging.NewComponentLogger(logger, component),
		statfs:  volumeStats,

		copyTree:  fileutil.CopyTree,
		copyFile:  fileutil.CopyFileVerified,
		removeAll: os.RemoveAll,
	}
}

// Root returns the backup root directory.
func (s *Store) Root() string { return s.root }

// SnapshotPath returns the snapshot directory for code.
func (s *Store) SnapshotPath(code string) string {
	return filepath.Join(s.root, code)
}

func checkCode(operation, code string) (string, error) {
	normalized := language.Normalize(code)
	if normalized == "" {
		return "", services.Wrap(services.ErrNotFound, component, operation, fmt.Sprintf("unknown language code %q", code), nil)
	}
	return normalized, nil
}

// Capture copies code's folders and control files found under root into a
// fresh snapshot and records buildID in its manifest. Any previous snapshot
// for code is deleted first. Copies are not atomic: a failure part-way leaves
// the entries already copied in place and no manifest.
func (s *Store) Capture(ctx context.Context, root, code, buildID string) (Counts, error) {
	var counts Counts
	code, err := checkCode("capture", code)
	if err != nil {
		return counts, err
	}
	ctx = services.WithLangCode(ctx, code)
	logger := logging.WithContext(ctx, s.logger)

	if strings.TrimSpace(root) == "" || !s.fsys.Exists(root) {
		return counts, services.Wrap(services.ErrNotFound, component, "capture", fmt.Sprintf("source %q does not exist", root), nil)
	}

	found := s.locator.Locate(root, code)
	if linked := found.LinkFolders(); len(linked) > 0 {
		logging.WarnWithContext(ctx, s.logger, "skipping linked folders during capture", "capture_linked_folder",
			logging.Any("folders", linked),
			logging.Hint("deactivate the language before capturing it again"),
			logging.Impact("linked folders are not copied into the snapshot"),
		)
		found = found.WithoutLinkFolders()
	}
	if found.Empty() {
		return counts, services.Wrap(services.ErrNotFound, component, "capture", fmt.Sprintf("no %s or vo%s assets under %q", code, code, root), nil)
	}
	if found.FolderCount() == 0 {
		return counts, services.Wrap(services.ErrIncomplete, component, "capture",
			fmt.Sprintf("found %d control file(s) but no %s or vo%s folder", found.FileCount(), code, code), nil)
	}

	target := s.SnapshotPath(code)
	if err := s.removeAll(target); err != nil {
		return counts, services.Wrap(services.ErrIOFailure, component, "capture", "remove previous snapshot", err)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return counts, services.Wrap(services.ErrIOFailure, component, "capture", "create snapshot directory", err)
	}

	folders := found.Folders()
	for _, rel := range folders {
		skipped, err := s.copyTree(filepath.Join(root, rel), filepath.Join(target, rel))
		if err != nil {
			return counts, services.Wrap(services.ErrIOFailure, component, "capture", "copy folder "+rel, err)
		}
		if len(skipped) > 0 {
			logging.WarnWithContext(ctx, s.logger, "links inside voice folder not copied", "capture_skipped_entries",
				logging.String("folder", rel),
				logging.Any("entries", skipped),
				logging.Hint("replace the links with the files they point to, then capture again"),
				logging.Impact("the snapshot lacks these entries and differs from the game directory"),
			)
		}
		counts.Folders++
	}
	files := found.Files()
	for _, rel := range files {
		if err := s.copyFile(filepath.Join(root, rel), filepath.Join(target, rel)); err != nil {
			return counts, services.Wrap(services.ErrIOFailure, component, "capture", "copy file "+rel, err)
		}
		counts.Files++
	}

	manifest := Manifest{BuildID: buildID, LangCode: code, Folders: folders, Files: files}
	if err := writeManifest(target, manifest); err != nil {
		return counts, services.Wrap(services.ErrIOFailure, component, "capture", "write manifest", err)
	}

	logger.Info(
		"snapshot captured",
		logging.Event("backup_captured"),
		logging.Counts(counts.Folders, counts.Files),
		logging.String("build_id", buildID),
	)
	return counts, nil
}

// Remove deletes the snapshot for code. Removing an absent snapshot is a no-op.
func (s *Store) Remove(ctx context.Context, code string) error {
	code, err := checkCode("remove", code)
	if err != nil {
		return err
	}
	logger := logging.WithContext(services.WithLangCode(ctx, code), s.logger)
	target := s.SnapshotPath(code)
	if _, err := os.Lstat(target); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("snapshot already absent")
		return nil
	}
	if err := os.RemoveAll(target); err != nil {
		return services.Wrap(services.ErrIOFailure, component, "remove", "delete snapshot", err)
	}
	logger.Info("snapshot removed", logging.Event("backup_removed"))
	return nil
}

// Load returns the snapshot for code when its directory exists. Manifest read
// failures yield a record with an unknown build id.
func (s *Store) Load(ctx context.Context, code string) (Record, bool) {
	code = language.Normalize(code)
	if code == "" {
		return Record{}, false
	}
	dir := s.SnapshotPath(code)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Record{}, false
	}
	record := Record{Code: code, Path: dir}
	manifest, err := readManifest(dir)
	if err != nil {
		logging.WithContext(ctx, s.logger).Debug("snapshot manifest unreadable",
			logging.String(logging.FieldLangCode, code),
			logging.Error(err),
		)
		return record, true
	}
	if manifest.LangCode != "" && manifest.LangCode != code {
		s.logger.Debug("manifest language differs from directory name",
			logging.String("manifest_lang_code", manifest.LangCode),
			logging.String(logging.FieldLangCode, code),
		)
	}
	record.BuildID = manifest.BuildID
	record.Folders = manifest.Folders
	record.Files = manifest.Files
	record.ManifestRead = true
	return record, true
}

// List returns the snapshots whose directory name is a known language code,
// in catalogue order. A missing backup root means no snapshots.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrIOFailure, component, "list", "read backup root", err)
	}
	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && language.Known(entry.Name()) && entry.Name() == language.Normalize(entry.Name()) {
			present[entry.Name()] = true
		}
	}
	records := make([]Record, 0, len(present))
	for _, code := range language.Codes() {
		if !present[code] {
			continue
		}
		if record, ok := s.Load(ctx, code); ok {
			records = append(records, record)
		}
	}
	return records, nil
}
