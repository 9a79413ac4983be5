package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSteam(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		return errors.New("paths.backup_dir must be set")
	}
	if c.Paths.GameDir != "" && within(c.Paths.GameDir, c.Paths.BackupDir) {
		return fmt.Errorf("paths.backup_dir %q must not be paths.game_dir or lie inside it", c.Paths.BackupDir)
	}
	return nil
}

// within reports whether path is dir or a descendant of it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (c *Config) validateSteam() error {
	if _, err := strconv.ParseUint(c.Steam.AppID, 10, 32); err != nil {
		return fmt.Errorf("steam.app_id must be a positive integer, got %q", c.Steam.AppID)
	}
	if len(c.Steam.DataSubpath) == 0 {
		return errors.New("steam.data_subpath must include at least one segment")
	}
	for _, segment := range c.Steam.DataSubpath {
		if segment == ".." || strings.ContainsAny(segment, `/\`) {
			return fmt.Errorf("steam.data_subpath segment %q must be a single directory name", segment)
		}
	}
	for _, pattern := range c.Steam.ExtraRootGlobs {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("steam.extra_root_globs: invalid pattern %q", pattern)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
