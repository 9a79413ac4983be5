// Package language holds the fixed catalogue of voice-pack languages.
//
// Codes double as asset folder names ("en", "voen") and control file stems,
// so they are matched exactly after lower-casing. Each entry also carries the
// engine's locale token and a BCP 47 tag for native display names.
package language
