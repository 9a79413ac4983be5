// Package backup captures and stores per-language voice snapshots.
//
// The backup root holds at most one directory per language code. Each
// snapshot mirrors the relative layout of the folders and .toc files found in
// the game tree and carries a backup_info.txt manifest with the build id at
// capture time. The directory name is authoritative for the code; a manifest
// that disagrees is ignored on that point.
//
// Captures replace the previous snapshot wholesale and are not atomic.
package backup
