package resolver

import "github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"

// FindFor scans candidates (the DB's object list, in insertion order) and
// returns the first Elf that obj can link against for the given needed
// soname: same link-compatibility class, matching basename, and visible to
// obj via Finds. The scan order is the deterministic tiebreak when several
// candidates share a basename.
func FindFor(obj *domain.Elf, needed string, candidates []*domain.Elf, extra []string, libraryPath []string, strict bool) *domain.Elf {
	for _, lib := range candidates {
		if lib.Basename != needed {
			continue
		}
		if !CanUse(obj, lib, strict) {
			continue
		}
		if !Finds(obj, lib.Dirname, extra, libraryPath) {
			continue
		}
		return lib
	}
	return nil
}

// LinkObject computes the full resolution for a single Elf: every soname
// in obj.Needed is either resolved to a concrete candidate (appended to
// found), dropped silently (it is in assumeFound), or recorded as missing.
//
// If obj is in the ignore-file rule set it is treated as entirely absent
// from link resolution and both outputs stay empty.
func LinkObject(
	obj *domain.Elf,
	candidates []*domain.Elf,
	extra []string,
	libraryPath []string,
	strict bool,
	ignored bool,
	assumeFound func(string) bool,
	found func(*domain.Elf),
	missing func(string),
) {
	if ignored {
		return
	}
	for _, n := range obj.Needed {
		if lib := FindFor(obj, n, candidates, extra, libraryPath, strict); lib != nil {
			found(lib)
			continue
		}
		if assumeFound(n) {
			continue
		}
		missing(n)
	}
}
