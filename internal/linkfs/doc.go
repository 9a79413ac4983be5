// Package linkfs abstracts directory links and the filesystem inspection used to
// recognise them.
//
// On Windows links are NTFS junctions created through mklink and detected by
// the reparse-point attribute. Elsewhere they are symbolic links.
package linkfs
