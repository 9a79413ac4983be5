package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voiceswitch/internal/api"
	"voiceswitch/internal/services"
)

type cliEnv struct {
	configPath string
	backupDir  string
	logDir     string
	gameDir    string
}

func setupCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	for _, key := range []string{
		"VOICESWITCH_BACKUP_DIR",
		"VOICESWITCH_LOG_DIR",
		"VOICESWITCH_GAME_DIR",
		"VOICESWITCH_STEAM_APP_ID",
		"VOICESWITCH_LOG_LEVEL",
		"VOICESWITCH_LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	env := cliEnv{
		configPath: filepath.Join(base, "config.toml"),
		backupDir:  filepath.Join(base, "backups"),
		logDir:     filepath.Join(base, "logs"),
		gameDir:    filepath.Join(base, "game", "Data", "Win32"),
	}
	cfg := "[paths]\n" +
		"backup_dir = " + quoteTOML(env.backupDir) + "\n" +
		"log_dir = " + quoteTOML(env.logDir) + "\n" +
		"\n[steam]\ncandidate_roots = [" + quoteTOML(filepath.Join(base, "no-steam")) + "]\n"
	if err := os.WriteFile(env.configPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.MkdirAll(env.gameDir, 0o755); err != nil {
		t.Fatalf("mkdir game dir: %v", err)
	}
	return env
}

func quoteTOML(s string) string {
	return "'" + s + "'"
}

func seedVoiceFiles(t *testing.T, root, code string) {
	t.Helper()
	files := map[string]string{
		filepath.Join("sound", code, "line01.wem"):         "hello",
		filepath.Join("sound", "vo"+code, "line02.wem"):    "world",
		filepath.Join("sound", code+".toc"):                "toc",
		filepath.Join("sound", "vo"+code+".toc"):           "votoc",
		filepath.Join("sound", "shared", "ambience01.wem"): "amb",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func requireSymlinks(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if err := os.Symlink(dir, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func runCLI(t *testing.T, env cliEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", env.configPath, "--game-dir", env.gameDir}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestLanguagesCommandListsCatalogue(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, env, "languages")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	for _, want := range []string{"en", "ja", "ko", "+miles_language japanese"} {
		requireContains(t, out, want)
	}
}

func TestLanguagesCommandJSON(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, env, "--json", "languages")
	if err != nil {
		t.Fatalf("languages --json: %v", err)
	}
	var langs []api.LanguageInfo
	if err := json.Unmarshal([]byte(out), &langs); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(langs) != 8 {
		t.Fatalf("expected 8 languages, got %d", len(langs))
	}
	if langs[0].Code != "en" || langs[0].HasBackup {
		t.Fatalf("unexpected first entry: %+v", langs[0])
	}
}

func TestCaptureListAndRemove(t *testing.T) {
	env := setupCLIEnv(t)
	seedVoiceFiles(t, env.gameDir, "de")

	out, _, err := runCLI(t, env, "capture", "de")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	requireContains(t, out, "2 folder(s), 2 control file(s)")
	if _, err := os.Stat(filepath.Join(env.backupDir, "de", "backup_info.txt")); err != nil {
		t.Fatalf("expected manifest: %v", err)
	}

	out, _, err = runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "de")
	requireContains(t, out, "unknown")

	out, _, err = runCLI(t, env, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Total:")

	out, _, err = runCLI(t, env, "remove", "de")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireContains(t, out, "snapshot removed")
	if _, err := os.Stat(filepath.Join(env.backupDir, "de")); !os.IsNotExist(err) {
		t.Fatalf("expected snapshot directory removed, stat err=%v", err)
	}

	out, _, err = runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	requireContains(t, out, "No snapshots stored")
}

func TestActivateAndDeactivateRoundTrip(t *testing.T) {
	requireSymlinks(t)
	env := setupCLIEnv(t)
	seedVoiceFiles(t, env.gameDir, "ja")

	if _, _, err := runCLI(t, env, "capture", "ja"); err != nil {
		t.Fatalf("capture: %v", err)
	}
	for _, rel := range []string{"ja", "voja", "ja.toc", "voja.toc"} {
		if err := os.RemoveAll(filepath.Join(env.gameDir, "sound", rel)); err != nil {
			t.Fatalf("clear %s: %v", rel, err)
		}
	}

	out, _, err := runCLI(t, env, "activate", "ja")
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	requireContains(t, out, "+miles_language japanese")
	info, err := os.Lstat(filepath.Join(env.gameDir, "sound", "ja"))
	if err != nil {
		t.Fatalf("lstat link: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("expected link, got mode %v", info.Mode())
	}
	if _, err := os.Stat(filepath.Join(env.gameDir, "sound", "ja.toc")); err != nil {
		t.Fatalf("expected control file restored: %v", err)
	}

	out, _, err = runCLI(t, env, "deactivate", "ja")
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	requireContains(t, out, "2 link(s), 2 control file(s)")
	if _, err := os.Lstat(filepath.Join(env.gameDir, "sound", "ja")); !os.IsNotExist(err) {
		t.Fatalf("expected link removed, lstat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(env.backupDir, "ja", "sound", "ja", "line01.wem")); err != nil {
		t.Fatalf("snapshot payload must survive deactivation: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.gameDir, "sound", "shared", "ambience01.wem")); err != nil {
		t.Fatalf("unrelated files must be untouched: %v", err)
	}
}

func TestActivateWithoutSnapshotReportsNotFound(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, env, "--json", "activate", "fr")
	if err == nil {
		t.Fatal("expected activate to fail")
	}
	var reported *reportedError
	if !errors.As(err, &reported) {
		t.Fatalf("expected reportedError, got %T", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	var outcome api.Outcome
	if err := json.Unmarshal([]byte(out), &outcome); err != nil {
		t.Fatalf("decode outcome: %v\n%s", err, out)
	}
	if outcome.OK || outcome.Kind != "not_found" || outcome.Code != "fr" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestCaptureRejectsUnknownCode(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, env, "capture", "xx")
	if err == nil {
		t.Fatal("expected capture to fail")
	}
	requireContains(t, out, "unknown language code")
	requireContains(t, out, "[NOT FOUND]")
	requireContains(t, out, "Hint:")
}

func TestCaptureWithoutFolderReportsIncomplete(t *testing.T) {
	env := setupCLIEnv(t)
	if err := os.WriteFile(filepath.Join(env.gameDir, "ru.toc"), []byte("toc"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, env, "capture", "ru")
	if !errors.Is(err, services.ErrIncomplete) {
		t.Fatalf("expected incomplete, got %v", err)
	}
	requireContains(t, out, "[INCOMPLETE]")
	requireContains(t, out, "language folder")
	if _, err := os.Stat(filepath.Join(env.backupDir, "ru")); !os.IsNotExist(err) {
		t.Fatalf("incomplete capture must not create a snapshot, stat err=%v", err)
	}
}

func TestGameDirEnclosingBackupDirIsRejected(t *testing.T) {
	env := setupCLIEnv(t)
	env.gameDir = filepath.Dir(env.backupDir)

	if _, _, err := runCLI(t, env, "list"); err == nil || !strings.Contains(err.Error(), "--game-dir") {
		t.Fatalf("expected --game-dir validation error, got %v", err)
	}
}

func TestStatusReportsMissingInstallation(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "game not detected")
	requireContains(t, out, env.gameDir)
	requireContains(t, out, "none")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLIEnv(t)
	target := filepath.Join(t.TempDir(), "voiceswitch.toml")

	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, target)

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, _, err := runCLI(t, env, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.backupDir)
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	env := setupCLIEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[steam]\napp_id = 'abc'\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := runCLI(t, env, "config", "validate"); err == nil {
		t.Fatal("expected validation error")
	}
	if _, _, err := runCLI(t, env, "list"); err == nil {
		t.Fatal("expected list to fail on invalid config")
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tc := range tests {
		if got := humanBytes(tc.in); got != tc.want {
			t.Fatalf("humanBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
