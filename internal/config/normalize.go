package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSteam(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		c.Paths.BackupDir = defaultBackupDir
	}
	if c.Paths.BackupDir, err = expandPath(strings.TrimSpace(c.Paths.BackupDir)); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.GameDir, err = expandPath(strings.TrimSpace(c.Paths.GameDir)); err != nil {
		return fmt.Errorf("paths.game_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSteam() error {
	c.Steam.AppID = strings.TrimSpace(c.Steam.AppID)
	if c.Steam.AppID == "" {
		c.Steam.AppID = defaultSteamAppID
	}
	c.Steam.DataSubpath = trimList(c.Steam.DataSubpath)
	if len(c.Steam.DataSubpath) == 0 {
		c.Steam.DataSubpath = defaultDataSubpath()
	}
	roots := trimList(c.Steam.CandidateRoots)
	for i, root := range roots {
		expanded, err := expandPath(root)
		if err != nil {
			return fmt.Errorf("steam.candidate_roots[%d]: %w", i, err)
		}
		roots[i] = expanded
	}
	c.Steam.CandidateRoots = roots
	c.Steam.ExtraRootGlobs = trimList(c.Steam.ExtraRootGlobs)
	c.Steam.Marker = strings.TrimSpace(c.Steam.Marker)
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format != "json" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
