package steam

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"voiceswitch/internal/config"
	"voiceswitch/internal/logging"
	"voiceswitch/internal/vdf"
)

// Installation describes a detected game install. It is recomputed on every
// Detect call and never persisted.
type Installation struct {
	// DataPath is the game data directory that holds the voice assets.
	DataPath string `json:"data_path"`
	// BuildID is the Steam build identifier of the installed game.
	BuildID      string `json:"build_id"`
	GamePath     string `json:"game_path"`
	InstallDir   string `json:"install_dir"`
	LibraryRoot  string `json:"library_root"`
	ManifestPath string `json:"manifest_path"`
	SteamRoot    string `json:"steam_root"`
}

// Resolver locates the game through conventional Steam install roots.
type Resolver struct {
	appID          string
	dataSubpath    []string
	candidateRoots []string
	extraGlobs     []string
	marker         string
	logger         *slog.Logger

	glob func(pattern string) ([]string, error)
}

// NewResolver builds a resolver from configuration. Empty candidate roots or
// marker fall back to the platform defaults.
func NewResolver(cfg *config.Config, logger *slog.Logger) *Resolver {
	def := config.Default()
	if cfg == nil {
		cfg = &def
	}
	r := &Resolver{
		appID:          cfg.Steam.AppID,
		dataSubpath:    append([]string(nil), cfg.Steam.DataSubpath...),
		candidateRoots: append([]string(nil), cfg.Steam.CandidateRoots...),
		extraGlobs:     append([]string(nil), cfg.Steam.ExtraRootGlobs...),
		marker:         cfg.Steam.Marker,
		logger:         logging.NewComponentLogger(logger, "steam"),
		glob: func(pattern string) ([]string, error) {
			return doublestar.FilepathGlob(pattern)
		},
	}
	if r.appID == "" {
		r.appID = def.Steam.AppID
	}
	if len(r.dataSubpath) == 0 {
		r.dataSubpath = def.Steam.DataSubpath
	}
	if len(r.candidateRoots) == 0 {
		r.candidateRoots = defaultCandidateRoots()
	}
	if r.marker == "" {
		r.marker = defaultMarker
	}
	return r
}

// Detect tries each candidate Steam root in order and returns the first
// complete installation. Missing or unreadable files advance to the next
// candidate; total failure reports false, never an error.
func (r *Resolver) Detect(ctx context.Context) (*Installation, bool) {
	logger := logging.WithContext(ctx, r.logger)
	for _, root := range r.Roots() {
		if !fileExists(filepath.Join(root, r.marker)) {
			logger.Debug("steam root skipped", logging.String("root", root), logging.String("reason", "marker missing"))
			continue
		}
		for _, library := range r.LibraryFolders(root) {
			install, err := r.FindApp(library)
			if err != nil {
				logger.Debug("library skipped", logging.String("library", library), logging.Error(err))
				continue
			}
			install.SteamRoot = root
			logger.Info(
				"installation detected",
				logging.Event("steam_detected"),
				logging.String("data_path", install.DataPath),
				logging.String("build_id", install.BuildID),
			)
			return install, true
		}
	}
	logger.Info("no installation detected", logging.Event("steam_not_found"))
	return nil, false
}

// Roots returns the candidate Steam roots followed by existing directories
// matched by the configured globs, without duplicates.
func (r *Resolver) Roots() []string {
	seen := make(map[string]struct{}, len(r.candidateRoots))
	roots := make([]string, 0, len(r.candidateRoots))
	add := func(path string) {
		key := filepath.Clean(path)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		roots = append(roots, path)
	}
	for _, root := range r.candidateRoots {
		add(root)
	}
	for _, pattern := range r.extraGlobs {
		matches, err := r.glob(pattern)
		if err != nil {
			r.logger.Debug("steam root glob failed", logging.String("pattern", pattern), logging.Error(err))
			continue
		}
		for _, match := range matches {
			if dirExists(match) {
				add(match)
			}
		}
	}
	return roots
}

// LibraryFolders returns steamRoot followed by every existing library folder
// listed in its steamapps/libraryfolders.vdf.
func (r *Resolver) LibraryFolders(steamRoot string) []string {
	folders := []string{steamRoot}
	file, err := os.Open(filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		return folders
	}
	defer file.Close()

	paths, err := vdf.LibraryPaths(file)
	if err != nil {
		r.logger.Debug("library folders unreadable", logging.String("root", steamRoot), logging.Error(err))
	}
	for _, path := range paths {
		path = nativePath(path)
		if !dirExists(path) || containsPath(folders, path) {
			continue
		}
		folders = append(folders, path)
	}
	return folders
}

// FindApp reads the app manifest inside library and builds the installation
// it describes.
func (r *Resolver) FindApp(library string) (*Installation, error) {
	manifestPath := filepath.Join(library, "steamapps", "appmanifest_"+r.appID+".acf")
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open app manifest: %w", err)
	}
	defer file.Close()

	manifest, err := vdf.ParseAppManifest(file)
	if err != nil {
		return nil, err
	}
	if !manifest.Complete() {
		return nil, fmt.Errorf("app manifest %s: installdir or buildid missing", manifestPath)
	}
	gamePath := filepath.Join(library, "steamapps", "common", manifest.InstallDir)
	return &Installation{
		DataPath:     filepath.Join(append([]string{gamePath}, r.dataSubpath...)...),
		BuildID:      manifest.BuildID,
		GamePath:     gamePath,
		InstallDir:   manifest.InstallDir,
		LibraryRoot:  library,
		ManifestPath: manifestPath,
	}, nil
}

func nativePath(path string) string {
	if filepath.Separator == '/' {
		return path
	}
	return strings.ReplaceAll(path, "/", string(filepath.Separator))
}

func containsPath(paths []string, candidate string) bool {
	candidate = filepath.Clean(candidate)
	for _, path := range paths {
		if filepath.Clean(path) == candidate {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
