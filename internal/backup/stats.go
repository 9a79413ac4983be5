package backup

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"voiceswitch/internal/fileutil"
	"voiceswitch/internal/logging"
	"voiceswitch/internal/services"
)

// SnapshotSummary describes the on-disk footprint of one snapshot.
type SnapshotSummary struct {
	Code       string    `json:"code"`
	BuildID    string    `json:"build_id"`
	SizeBytes  int64     `json:"size_bytes"`
	FileCount  int       `json:"file_count"`
	CapturedAt time.Time `json:"captured_at"`
}

// Stats reports snapshot usage and free space on the backup volume.
type Stats struct {
	Root         string            `json:"root"`
	Snapshots    []SnapshotSummary `json:"snapshots"`
	TotalBytes   int64             `json:"total_bytes"`
	FreeBytes    uint64            `json:"free_bytes"`
	TotalFSBytes uint64            `json:"total_fs_bytes"`
	FreeRatio    float64           `json:"free_ratio"`
}

// Stats walks every snapshot and queries the backup volume. The capture time
// is the manifest's modification time, falling back to the newest file.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Root: s.root}
	records, err := s.List(ctx)
	if err != nil {
		return stats, err
	}
	for _, record := range records {
		tree, err := fileutil.DirStats(record.Path)
		if err != nil {
			return stats, services.Wrap(services.ErrIOFailure, component, "stats", "measure snapshot "+record.Code, err)
		}
		captured := tree.Modified
		if info, err := os.Stat(filepath.Join(record.Path, ManifestFileName)); err == nil {
			captured = info.ModTime()
		}
		stats.Snapshots = append(stats.Snapshots, SnapshotSummary{
			Code:       record.Code,
			BuildID:    record.BuildID,
			SizeBytes:  tree.Bytes,
			FileCount:  tree.Files,
			CapturedAt: captured,
		})
		stats.TotalBytes += tree.Bytes
	}

	total, free, err := s.statfs(existingAncestor(s.root))
	if err != nil {
		return stats, services.Wrap(services.ErrIOFailure, component, "stats", "statfs", err)
	}
	stats.TotalFSBytes = total
	stats.FreeBytes = free
	stats.FreeRatio = 1.0
	if total > 0 {
		stats.FreeRatio = float64(free) / float64(total)
	}
	if len(stats.Snapshots) == 0 {
		logging.WithContext(ctx, s.logger).Info("no snapshots stored")
	}
	return stats, nil
}

func existingAncestor(path string) string {
	current := filepath.Clean(path)
	for {
		if _, err := os.Stat(current); err == nil || !errors.Is(err, fs.ErrNotExist) {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return current
		}
		current = parent
	}
}
