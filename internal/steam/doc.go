// Package steam detects the game installation through the Steam client's
// library descriptors.
//
// Detection is best-effort. Each candidate root must contain the platform's
// Steam marker executable; its libraryfolders.vdf lists further library roots,
// and the first library holding a complete appmanifest for the configured app
// id wins.
package steam
