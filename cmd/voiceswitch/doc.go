// Command voiceswitch captures a game's localized voice files into per-language
// snapshots and switches the active language by linking a snapshot back into
// the game directory.
//
// Commands that change snapshots or the game tree hold a lock file in the log
// directory so two invocations never interleave.
package main
