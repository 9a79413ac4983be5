package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrIncomplete       = errors.New("incomplete capture")
	ErrVersionMismatch  = errors.New("version mismatch")
	ErrIOFailure        = errors.New("io failure")
	ErrLinkFailure      = errors.New("link failure")
	ErrNothingToRestore = errors.New("nothing to restore")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIOFailure
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// VersionMismatchError reports a snapshot captured against a different build
// than the one currently installed.
type VersionMismatchError struct {
	BackupBuildID    string
	InstalledBuildID string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("version mismatch: backup build %s, installed build %s", e.BackupBuildID, e.InstalledBuildID)
}

func (e *VersionMismatchError) Is(target error) bool {
	return target == ErrVersionMismatch
}

// Kind maps an error to a stable classification string for presentation.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrVersionMismatch):
		return "version_mismatch"
	case errors.Is(err, ErrIncomplete):
		return "incomplete"
	case errors.Is(err, ErrNothingToRestore):
		return "nothing_to_restore"
	case errors.Is(err, ErrLinkFailure):
		return "link_failure"
	case errors.Is(err, ErrIOFailure):
		return "io_failure"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "unknown"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
