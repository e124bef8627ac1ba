// Package resolver implements the linker-semantics predicates pkgdepdb uses
// to decide whether one ELF object can satisfy another's dependency: the
// visibility predicate (Finds), ABI compatibility (CanUse), and the
// per-object resolution entry points (FindFor, LinkObject).
package resolver

import (
	"slices"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
)

// Finds decides whether the linker, running as obj, would search path when
// looking for a needed library. extra is the per-package library-path list
// for obj's owner, or nil.
//
// Priority order, matching the real dynamic linker:
//  1. obj's RPATH, if set.
//  2. (LD_LIBRARY_PATH is never consulted — this is a virtual install.)
//  3. obj's RUNPATH, if set.
//  4. the hard-coded trusted paths /lib, /usr/lib.
//  5. the DB's global library_path list.
//  6. extra, the owner's per-package library path list.
func Finds(obj *domain.Elf, path string, extra []string, libraryPath []string) bool {
	path = domain.NormalizePath(path)

	if obj.RPathSet && slices.Contains(domain.SplitSearchPath(obj.RPath), path) {
		return true
	}
	if obj.RunPathSet && slices.Contains(domain.SplitSearchPath(obj.RunPath), path) {
		return true
	}
	if slices.Contains(domain.TrustedPaths, path) {
		return true
	}
	if slices.Contains(libraryPath, path) {
		return true
	}
	if extra != nil && slices.Contains(extra, path) {
		return true
	}
	return false
}
