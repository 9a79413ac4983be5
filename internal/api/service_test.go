package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voiceswitch/internal/config"
	"voiceswitch/internal/linkfs"
	"voiceswitch/internal/logging"
	"voiceswitch/internal/services"
	"voiceswitch/internal/steam"
)

type stubDetector struct {
	install *steam.Installation
}

func (s stubDetector) Detect(context.Context) (*steam.Installation, bool) {
	return s.install, s.install != nil
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestService(t *testing.T, install *steam.Installation, opts ...Option) (*Service, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.BackupDir = filepath.Join(t.TempDir(), "voice_backups")
	cfg.Paths.LogDir = t.TempDir()
	opts = append([]Option{WithDetector(stubDetector{install: install})}, opts...)
	return NewService(&cfg, logging.NewNop(), opts...), &cfg
}

func TestCaptureUsesDetectedDataPathAndBuild(t *testing.T) {
	data := t.TempDir()
	writeTree(t, data, map[string]string{"en/a.bnk": "a", "en.toc": "t"})
	svc, _ := newTestService(t, &steam.Installation{DataPath: data, BuildID: "321"})

	out, err := svc.Capture(context.Background(), Request{Code: "EN"})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !out.OK || out.Code != "en" || out.Folders != 1 || out.Files != 1 || out.BuildID != "321" || out.Root != data {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	views, err := svc.ListBackups(context.Background())
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(views) != 1 || views[0].BuildID != "321" || !views[0].Compatible {
		t.Fatalf("unexpected views: %+v", views)
	}
}

func TestCaptureIncompleteOutcome(t *testing.T) {
	data := t.TempDir()
	writeTree(t, data, map[string]string{"en.toc": "t"})
	svc, _ := newTestService(t, nil)

	out, err := svc.Capture(context.Background(), Request{Code: "en", Root: data})
	if !errors.Is(err, services.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if out.OK || out.Kind != "incomplete" || !strings.Contains(out.Message, "incomplete") {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if !strings.Contains(out.Hint, "language folder") {
		t.Fatalf("expected incomplete hint, got %q", out.Hint)
	}
}

func TestRootResolutionOrder(t *testing.T) {
	detected := t.TempDir()
	configured := t.TempDir()
	svc, cfg := newTestService(t, &steam.Installation{DataPath: detected})

	root, err := svc.resolveRoot("", &steam.Installation{DataPath: detected})
	if err != nil || root != detected {
		t.Fatalf("detected root: %q, %v", root, err)
	}
	cfg.Paths.GameDir = configured
	if root, _ = svc.resolveRoot("", &steam.Installation{DataPath: detected}); root != configured {
		t.Fatalf("configured root must win over detection, got %q", root)
	}
	explicit := t.TempDir()
	if root, _ = svc.resolveRoot(explicit, nil); root != explicit {
		t.Fatalf("explicit root must win, got %q", root)
	}
	cfg.Paths.GameDir = ""
	if _, err := svc.resolveRoot("", nil); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound with nothing to resolve, got %v", err)
	}
}

func TestUnknownCodeIsNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)
	out, err := svc.Activate(context.Background(), Request{Code: "it", Root: t.TempDir()})
	if !errors.Is(err, services.ErrNotFound) || out.Kind != "not_found" {
		t.Fatalf("expected not_found, got %+v, %v", out, err)
	}
}

func TestActivateMismatchOutcome(t *testing.T) {
	data := t.TempDir()
	writeTree(t, data, map[string]string{"fr/a.bnk": "a"})
	svc, _ := newTestService(t, &steam.Installation{DataPath: data, BuildID: "1"})
	if _, err := svc.Capture(context.Background(), Request{Code: "fr"}); err != nil {
		t.Fatal(err)
	}

	updated, _ := newTestService(t, &steam.Installation{DataPath: data, BuildID: "2"})
	updated.store = svc.store
	updated.engine = svc.engine

	views, err := updated.ListBackups(context.Background())
	if err != nil || len(views) != 1 || views[0].Compatible {
		t.Fatalf("expected incompatible snapshot, got %+v, %v", views, err)
	}
	out, err := updated.Activate(context.Background(), Request{Code: "fr"})
	if !errors.Is(err, services.ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
	if out.Kind != "version_mismatch" || out.BuildID != "1" || !strings.Contains(out.Message, "installed build 2") {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestActivateAndDeactivateRoundTrip(t *testing.T) {
	linkDir := t.TempDir()
	if err := (linkfs.OS{}).CreateLink(linkDir, filepath.Join(linkDir, "link")); err != nil {
		t.Skipf("directory links unavailable: %v", err)
	}
	data := t.TempDir()
	writeTree(t, data, map[string]string{"sub/voes/a.bnk": "a", "sub/voes.toc": "t"})
	svc, _ := newTestService(t, &steam.Installation{DataPath: data, BuildID: "5"})
	if _, err := svc.Capture(context.Background(), Request{Code: "es"}); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(data, "sub")); err != nil {
		t.Fatal(err)
	}

	out, err := svc.Activate(context.Background(), Request{Code: "es"})
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if out.LaunchOption != "+miles_language spanish" || out.Folders != 1 || out.Files != 1 {
		t.Fatalf("unexpected activation outcome: %+v", out)
	}

	out, err = svc.Deactivate(context.Background(), Request{Code: "es"})
	if err != nil || out.Folders != 1 || out.Files != 1 {
		t.Fatalf("unexpected deactivation outcome: %+v, %v", out, err)
	}
}

func TestRemoveBackupAndLanguages(t *testing.T) {
	data := t.TempDir()
	writeTree(t, data, map[string]string{"ko/a.bnk": "a"})
	svc, _ := newTestService(t, nil)
	if _, err := svc.Capture(context.Background(), Request{Code: "ko", Root: data}); err != nil {
		t.Fatal(err)
	}

	langs, err := svc.Languages(context.Background())
	if err != nil || len(langs) != 8 {
		t.Fatalf("Languages = %v, %v", langs, err)
	}
	for _, l := range langs {
		if l.HasBackup != (l.Code == "ko") {
			t.Fatalf("unexpected backup flag for %s", l.Code)
		}
	}

	out, err := svc.RemoveBackup(context.Background(), "ko")
	if err != nil || !out.OK {
		t.Fatalf("RemoveBackup: %+v, %v", out, err)
	}
	views, err := svc.ListBackups(context.Background())
	if err != nil || len(views) != 0 {
		t.Fatalf("expected no snapshots, got %+v, %v", views, err)
	}
}
