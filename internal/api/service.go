package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"voiceswitch/internal/activation"
	"voiceswitch/internal/backup"
	"voiceswitch/internal/config"
	"voiceswitch/internal/language"
	"voiceswitch/internal/linkfs"
	"voiceswitch/internal/logging"
	"voiceswitch/internal/services"
	"voiceswitch/internal/steam"
)

// Detector finds the current game installation.
type Detector interface {
	Detect(ctx context.Context) (*steam.Installation, bool)
}

// Request targets one language code. An empty Root resolves to the configured
// game directory and then to the detected installation's data path.
type Request struct {
	Code string `json:"code"`
	Root string `json:"root,omitempty"`
}

// Outcome is the presentation-ready result of a core call.
type Outcome struct {
	OK           bool   `json:"ok"`
	Kind         string `json:"kind,omitempty"`
	Message      string `json:"message"`
	Hint         string `json:"hint,omitempty"`
	Code         string `json:"code,omitempty"`
	Root         string `json:"root,omitempty"`
	Folders      int    `json:"folders"`
	Files        int    `json:"files"`
	BuildID      string `json:"build_id,omitempty"`
	LaunchOption string `json:"launch_option,omitempty"`
}

// BackupView is a stored snapshot annotated for display.
type BackupView struct {
	backup.Record
	Label string `json:"label"`
	// Compatible is false when the snapshot's build differs from the
	// detected installation; activation would be refused.
	Compatible bool `json:"compatible"`
}

// LanguageInfo is one catalogue entry with its snapshot state.
type LanguageInfo struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	NativeName   string `json:"native_name"`
	LaunchOption string `json:"launch_option"`
	HasBackup    bool   `json:"has_backup"`
}

// Service composes detection, snapshot storage, and activation.
type Service struct {
	cfg      *config.Config
	detector Detector
	store    *backup.Store
	engine   *activation.Engine
	logger   *slog.Logger
}

// Option customises a Service.
type Option func(*options)

type options struct {
	detector Detector
	fsys     linkfs.Inspector
	links    linkfs.LinkProvider
}

// WithDetector replaces Steam detection.
func WithDetector(d Detector) Option {
	return func(o *options) { o.detector = d }
}

// WithFilesystem replaces the filesystem inspector and link provider.
func WithFilesystem(fsys linkfs.Inspector, links linkfs.LinkProvider) Option {
	return func(o *options) {
		o.fsys = fsys
		o.links = links
	}
}

// NewService builds a service from configuration.
func NewService(cfg *config.Config, logger *slog.Logger, opts ...Option) *Service {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.detector == nil {
		o.detector = steam.NewResolver(cfg, logger)
	}
	store := backup.NewStore(cfg.Paths.BackupDir, o.fsys, logger)
	return &Service{
		cfg:      cfg,
		detector: o.detector,
		store:    store,
		engine:   activation.NewEngine(store, o.fsys, o.links, logger),
		logger:   logging.NewComponentLogger(logger, "api"),
	}
}

// DetectInstallation reports the current installation, if any.
func (s *Service) DetectInstallation(ctx context.Context) (*steam.Installation, bool) {
	return s.detector.Detect(ctx)
}

// ListBackups returns stored snapshots marked with build compatibility.
func (s *Service) ListBackups(ctx context.Context) ([]BackupView, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	install, _ := s.detector.Detect(ctx)
	views := make([]BackupView, 0, len(records))
	for _, record := range records {
		views = append(views, BackupView{
			Record:     record,
			Label:      language.Label(record.Code),
			Compatible: activation.Compatible(record, install),
		})
	}
	return views, nil
}

// Languages lists the catalogue and whether each code has a snapshot.
func (s *Service) Languages(ctx context.Context) ([]LanguageInfo, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	stored := make(map[string]bool, len(records))
	for _, r := range records {
		stored[r.Code] = true
	}
	all := language.All()
	out := make([]LanguageInfo, 0, len(all))
	for _, d := range all {
		out = append(out, LanguageInfo{
			Code:         d.Code,
			Name:         d.DisplayName,
			NativeName:   language.NativeName(d.Code),
			LaunchOption: language.LaunchOption(d.Code),
			HasBackup:    stored[d.Code],
		})
	}
	return out, nil
}

// Stats reports snapshot disk usage.
func (s *Service) Stats(ctx context.Context) (backup.Stats, error) {
	return s.store.Stats(ctx)
}

// Capture snapshots req.Code from the game tree, recording the detected build id.
func (s *Service) Capture(ctx context.Context, req Request) (Outcome, error) {
	code, err := s.requireCode("capture", req.Code)
	if err != nil {
		return failure(req.Code, err), err
	}
	ctx = services.WithLangCode(ctx, code)
	install, _ := s.detector.Detect(ctx)
	root, err := s.resolveRoot(req.Root, install)
	if err != nil {
		return failure(code, err), err
	}
	buildID := ""
	if install != nil {
		buildID = install.BuildID
	}

	counts, err := s.store.Capture(ctx, root, code, buildID)
	if err != nil {
		return s.fail(ctx, "capture", code, root, counts, err), err
	}
	msg := fmt.Sprintf("%s captured: %d folder(s), %d control file(s)", language.Label(code), counts.Folders, counts.Files)
	if buildID != "" {
		msg += ", build " + buildID
	}
	return Outcome{OK: true, Message: msg, Code: code, Root: root, Folders: counts.Folders, Files: counts.Files, BuildID: buildID}, nil
}

// Activate makes req.Code's snapshot live in the game tree.
func (s *Service) Activate(ctx context.Context, req Request) (Outcome, error) {
	code, err := s.requireCode("activate", req.Code)
	if err != nil {
		return failure(req.Code, err), err
	}
	ctx = services.WithLangCode(ctx, code)
	install, _ := s.detector.Detect(ctx)
	root, err := s.resolveRoot(req.Root, install)
	if err != nil {
		return failure(code, err), err
	}

	counts, err := s.engine.Activate(ctx, root, code, install)
	if err != nil {
		out := s.fail(ctx, "activate", code, root, counts, err)
		var mismatch *services.VersionMismatchError
		if errors.As(err, &mismatch) {
			out.BuildID = mismatch.BackupBuildID
			out.Message = fmt.Sprintf("version mismatch: snapshot build %s, installed build %s; delete the game's voice files and capture again",
				mismatch.BackupBuildID, mismatch.InstalledBuildID)
		}
		return out, err
	}
	launch := language.LaunchOption(code)
	return Outcome{
		OK:           true,
		Message:      fmt.Sprintf("%s active: %d link(s), %d control file(s); add launch option %s", language.Label(code), counts.Folders, counts.Files, launch),
		Code:         code,
		Root:         root,
		Folders:      counts.Folders,
		Files:        counts.Files,
		LaunchOption: launch,
	}, nil
}

// Deactivate removes req.Code's links and control files from the game tree.
func (s *Service) Deactivate(ctx context.Context, req Request) (Outcome, error) {
	code, err := s.requireCode("deactivate", req.Code)
	if err != nil {
		return failure(req.Code, err), err
	}
	ctx = services.WithLangCode(ctx, code)
	var install *steam.Installation
	if strings.TrimSpace(req.Root) == "" && s.cfg.Paths.GameDir == "" {
		install, _ = s.detector.Detect(ctx)
	}
	root, err := s.resolveRoot(req.Root, install)
	if err != nil {
		return failure(code, err), err
	}

	counts, err := s.engine.Deactivate(ctx, root, code)
	if err != nil {
		return s.fail(ctx, "deactivate", code, root, counts, err), err
	}
	return Outcome{
		OK:      true,
		Message: fmt.Sprintf("%s voice files removed: %d link(s), %d control file(s)", language.Label(code), counts.Folders, counts.Files),
		Code:    code,
		Root:    root,
		Folders: counts.Folders,
		Files:   counts.Files,
	}, nil
}

// RemoveBackup deletes the snapshot for code.
func (s *Service) RemoveBackup(ctx context.Context, code string) (Outcome, error) {
	normalized, err := s.requireCode("remove", code)
	if err != nil {
		return failure(code, err), err
	}
	if err := s.store.Remove(ctx, normalized); err != nil {
		return s.fail(ctx, "remove", normalized, "", backup.Counts{}, err), err
	}
	return Outcome{OK: true, Message: language.Label(normalized) + " snapshot removed", Code: normalized}, nil
}

func (s *Service) requireCode(operation, code string) (string, error) {
	normalized := language.Normalize(code)
	if normalized == "" {
		return "", services.Wrap(services.ErrNotFound, "api", operation,
			fmt.Sprintf("unknown language code %q (known: %s)", code, strings.Join(language.Codes(), ", ")), nil)
	}
	return normalized, nil
}

func (s *Service) resolveRoot(explicit string, install *steam.Installation) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		root, err := config.ExpandPath(strings.TrimSpace(explicit))
		if err != nil {
			return "", services.Wrap(services.ErrNotFound, "api", "resolve root", "", err)
		}
		return root, nil
	}
	if s.cfg.Paths.GameDir != "" {
		return s.cfg.Paths.GameDir, nil
	}
	if install != nil && install.DataPath != "" {
		return install.DataPath, nil
	}
	return "", services.Wrap(services.ErrNotFound, "api", "resolve root",
		"no game directory given, configured, or detected", nil)
}

func (s *Service) fail(ctx context.Context, operation, code, root string, counts backup.Counts, err error) Outcome {
	out := failure(code, err)
	logging.WithContext(ctx, s.logger).Warn(
		operation+" failed",
		logging.Event(operation+"_failed"),
		logging.String("kind", out.Kind),
		logging.Hint(out.Hint),
		logging.Error(err),
	)
	out.Root = root
	out.Folders = counts.Folders
	out.Files = counts.Files
	return out
}

func failure(code string, err error) Outcome {
	kind := services.Kind(err)
	return Outcome{
		OK:      false,
		Kind:    kind,
		Message: messageFor(kind, code, err),
		Hint:    hintFor(kind),
		Code:    code,
	}
}

func messageFor(kind, code string, err error) string {
	label := code
	if language.Known(code) {
		label = language.Label(code)
	}
	switch kind {
	case "incomplete":
		return fmt.Sprintf("%s capture incomplete: control files found but no voice folder; nothing was saved", label)
	case "nothing_to_restore":
		return fmt.Sprintf("%s snapshot holds no voice files", label)
	default:
		return err.Error()
	}
}

func hintFor(kind string) string {
	switch kind {
	case "not_found":
		return "check the game directory and language code"
	case "incomplete":
		return "point at the directory that contains the language folder"
	case "version_mismatch":
		return "the game updated since capture; capture the language again"
	case "link_failure":
		return "check that the destination is not an ordinary directory and that links are permitted"
	case "nothing_to_restore":
		return "capture the language again"
	default:
		return "check filesystem permissions and free space"
	}
}
