package activation

import (
	"voiceswitch/internal/backup"
	"voiceswitch/internal/services"
	"voiceswitch/internal/steam"
)

// Check allows a restore when the snapshot's build id is unknown, when no
// installation was detected, or when both build ids are equal. Otherwise it
// returns a *services.VersionMismatchError. There is no override.
func Check(record backup.Record, install *steam.Installation) error {
	if record.BuildID == "" || install == nil {
		return nil
	}
	if record.BuildID == install.BuildID {
		return nil
	}
	return &services.VersionMismatchError{
		BackupBuildID:    record.BuildID,
		InstalledBuildID: install.BuildID,
	}
}

// Compatible reports whether Check would allow restoring record.
func Compatible(record backup.Record, install *steam.Installation) bool {
	return Check(record, install) == nil
}
