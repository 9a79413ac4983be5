// Package vdf reads the handful of values voiceswitch needs from Steam's
// line-oriented key/value files (libraryfolders.vdf and appmanifest_*.acf).
//
// It is not a general VDF parser: a line matches when it contains the quoted
// key, and its value is the fourth quote-delimited segment. Nesting, escapes
// and conditionals are ignored.
package vdf
