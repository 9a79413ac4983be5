// Package activation switches the live voice language of a game tree.
//
// Activate replaces each language folder with a directory link into the
// matching snapshot and copies the small .toc control files, after checking
// that the snapshot was captured against the installed build. Deactivate
// removes only links and control files; real directories stay put.
package activation
