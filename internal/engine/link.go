// Package engine implements the DB-level operations that mutate or
// recompute the dependency graph: incremental install/remove, full relink
// with a parallel worker pool, rule-store mutators, and the package-level
// integrity checker.
package engine

import (
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/resolver"
)

// relinkObject recomputes obj's ReqFound/ReqMissing against candidates,
// honouring the DB's ignore-file and assume-found rule stores.
func relinkObject(db *domain.DB, obj *domain.Elf, candidates []*domain.Elf) {
	obj.ResetResolution()
	extra := db.PackageLibraryPath[obj.Owner.Name]
	resolver.LinkObject(
		obj,
		candidates,
		extra,
		db.LibraryPath,
		db.StrictLinking,
		db.IsIgnoredFile(obj),
		db.IsAssumedFound,
		obj.AddFound,
		obj.AddMissing,
	)
}

// canUseAndFinds reports whether seeker could link against candidate given
// seeker's per-package library path.
func canUseAndFinds(db *domain.DB, seeker, candidate *domain.Elf, extra []string) bool {
	return resolver.CanUse(seeker, candidate, db.StrictLinking) &&
		resolver.Finds(seeker, candidate.Dirname, extra, db.LibraryPath)
}

// findReplacement looks for a new candidate satisfying soname for seeker,
// used when a previously-resolved or previously-missing dependency needs
// re-resolution after a package is removed or installed.
func findReplacement(db *domain.DB, seeker *domain.Elf, soname string, extra []string) *domain.Elf {
	return resolver.FindFor(seeker, soname, db.Objects, extra, db.LibraryPath, db.StrictLinking)
}

// relinkObjectInto computes obj's resolution against candidates into the
// caller-supplied maps instead of mutating obj directly, for use by the
// parallel relink worker pool where no worker may write through an Elf.
func relinkObjectInto(db *domain.DB, obj *domain.Elf, candidates []*domain.Elf, found map[*domain.Elf]struct{}, missing map[string]struct{}) {
	extra := db.PackageLibraryPath[obj.Owner.Name]
	resolver.LinkObject(
		obj,
		candidates,
		extra,
		db.LibraryPath,
		db.StrictLinking,
		db.IsIgnoredFile(obj),
		db.IsAssumedFound,
		func(lib *domain.Elf) { found[lib] = struct{}{} },
		func(soname string) { missing[soname] = struct{}{} },
	)
}
