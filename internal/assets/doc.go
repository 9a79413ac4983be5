// Package assets discovers a language's voice folders and .toc control files
// inside an arbitrary directory tree.
//
// A code such as "en" matches folders named "en" or "voen" and files named
// "en.toc" or "voen.toc". Directory links are never followed, so scanning a
// tree that already contains activated snapshots cannot loop or report
// assets twice.
package assets
