package activation

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
	"voiceswitch/internal/backup"
	"voiceswitch/internal/fileutil"
	"voiceswitch/internal/language"
	"voiceswitch/internal/linkfs"
	"voiceswitch/internal/logging"
	"voiceswitch/internal/services"
	"voiceswitch/internal/steam"
)

const component = "activation"

// Engine makes snapshots live in the game tree and takes them down again.
type Engine struct {
	store   *backup.Store
	locator *assets.Locator
	fsys    linkfs.Inspector
	links   linkfs.LinkProvider
	logger  *slog.Logger
}

// NewEngine wires an engine. Nil inspector or link provider fall back to the host filesystem.
func NewEngine(store *backup.Store, fsys linkfs.Inspector, links linkfs.LinkProvider, logger *slog.Logger) *Engine {
	if fsys == nil {
		fsys = linkfs.OS{}
	}
	if links == nil {
		links = linkfs.OS{}
	}
	return &Engine{
		store:   store,
		locator: assets.NewLocator(fsys),
		fsys:    fsys,
		links:   links,
		logger:  logging.NewComponentLogger(logger, component),
	}
}

// Activate links each snapshot folder for code into root and copies its
// control files. install may be nil when no installation was detected. The
// first failure stops the run and leaves earlier links and copies in place.
func (e *Engine) Activate(ctx context.Context, root, code string, install *steam.Installation) (backup.Counts, error) {
	var counts backup.Counts
	normalized := language.Normalize(code)
	if normalized == "" {
		return counts, services.Wrap(services.ErrNotFound, component, "activate", fmt.Sprintf("unknown language code %q", code), nil)
	}
	code = normalized
	ctx = services.WithLangCode(ctx, code)
	logger := logging.WithContext(ctx, e.logger)

	record, ok := e.store.Load(ctx, code)
	if !ok {
		return counts, services.Wrap(services.ErrNotFound, component, "activate", "no snapshot for "+code, nil)
	}
	if err := Check(record, install); err != nil {
		logging.WarnWithContext(ctx, e.logger, "activation blocked by build mismatch", "version_mismatch",
			logging.BuildIDs(record.BuildID, install.BuildID),
			logging.Hint("delete the game's voice files, then capture this language again"),
			logging.Impact("no files were changed"),
		)
		return counts, services.Wrap(services.ErrVersionMismatch, component, "activate", "", err)
	}
	if strings.TrimSpace(root) == "" || !e.fsys.Exists(root) {
		return counts, services.Wrap(services.ErrNotFound, component, "activate", fmt.Sprintf("game directory %q does not exist", root), nil)
	}

	snapshot, err := filepath.Abs(record.Path)
	if err != nil {
		return counts, services.Wrap(services.ErrIOFailure, component, "activate", "resolve snapshot path", err)
	}
	found := e.locator.Locate(snapshot, code)

	for _, rel := range found.Folders() {
		if err := e.linkFolder(filepath.Join(snapshot, rel), filepath.Join(root, rel)); err != nil {
			return counts, services.Wrap(services.ErrLinkFailure, component, "activate", "link "+rel, err)
		}
		counts.Folders++
	}
	for _, rel := range found.Files() {
		if err := fileutil.CopyFileVerified(filepath.Join(snapshot, rel), filepath.Join(root, rel)); err != nil {
			return counts, services.Wrap(services.ErrIOFailure, component, "activate", "copy "+rel, err)
		}
		counts.Files++
	}

	if counts.Folders == 0 && counts.Files == 0 {
		return counts, services.Wrap(services.ErrNothingToRestore, component, "activate", "snapshot for "+code+" holds no voice files", nil)
	}
	logger.Info(
		"language activated",
		logging.Event("language_activated"),
		logging.Counts(counts.Folders, counts.Files),
		logging.String("launch_option", language.LaunchOption(code)),
	)
	return counts, nil
}

func (e *Engine) linkFolder(target, dest string) error {
	if e.links.IsLink(dest) {
		if err := e.links.RemoveLink(dest); err != nil {
			return fmt.Errorf("remove existing link: %w", err)
		}
	} else if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("%s exists and is not a directory link; move it aside or deactivate first", dest)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create parent: %w", err)
	}
	return e.links.CreateLink(target, dest)
}

// Deactivate removes the links for code's folders under root and deletes its
// control files. Ordinary directories that share a language folder name are
// never touched.
func (e *Engine) Deactivate(ctx context.Context, root, code string) (backup.Counts, error) {
	var counts backup.Counts
	normalized := language.Normalize(code)
	if normalized == "" {
		return counts, services.Wrap(services.ErrNotFound, component, "deactivate", fmt.Sprintf("unknown language code %q", code), nil)
	}
	code = normalized
	ctx = services.WithLangCode(ctx, code)
	logger := logging.WithContext(ctx, e.logger)

	if strings.TrimSpace(root) == "" || !e.fsys.Exists(root) {
		return counts, services.Wrap(services.ErrNotFound, component, "deactivate", fmt.Sprintf("game directory %q does not exist", root), nil)
	}
	found := e.locator.Locate(root, code)
	if found.Empty() {
		return counts, services.Wrap(services.ErrNotFound, component, "deactivate", fmt.Sprintf("no %s or vo%s assets under %q", code, code, root), nil)
	}

	for _, rel := range found.Folders() {
		dest := filepath.Join(root, rel)
		if !e.links.IsLink(dest) {
			logger.Debug("keeping ordinary directory", logging.String("path", rel))
			continue
		}
		if err := e.links.RemoveLink(dest); err != nil {
			return counts, fmt.Errorf("%w: %w", services.ErrIOFailure,
				services.Wrap(services.ErrLinkFailure, component, "deactivate", "remove link "+rel, err))
		}
		counts.Folders++
	}
	for _, rel := range found.Files() {
		if err := os.Remove(filepath.Join(root, rel)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return counts, services.Wrap(services.ErrIOFailure, component, "deactivate", "delete "+rel, err)
		}
		counts.Files++
	}

	logger.Info(
		"language deactivated",
		logging.Event("language_deactivated"),
		logging.Counts(counts.Folders, counts.Files),
	)
	return counts, nil
}
