package engine

import (
	"context"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
)

// InstallPackage inserts pkg into the DB, replacing any existing package of
// the same name first (install is "replace or insert"). It links pkg's own
// objects against the full object pool (a two-pass self-visibility: every
// new object is appended before any of them is resolved, so new objects
// can link against one another), then runs a reverse pass that lets
// existing objects pick up newly-available libraries, reporting progress
// through telemetry once that pass is large enough to parallelise.
func InstallPackage(ctx context.Context, db *domain.DB, pkg *domain.Package, telemetry ports.Telemetry) {
	if existing := db.FindPackage(pkg.Name); existing != nil {
		DeletePackage(ctx, db, pkg.Name, telemetry)
	}

	db.Packages = append(db.Packages, pkg)
	if len(pkg.Depends) > 0 || len(pkg.OptDepends) > 0 || len(pkg.Provides) > 0 ||
		len(pkg.Replaces) > 0 || len(pkg.Conflicts) > 0 {
		db.ContainsPackageDepends = true
	}
	if len(pkg.Groups) > 0 {
		db.ContainsGroups = true
	}
	if len(pkg.FileList) > 0 {
		db.ContainsFileLists = true
	}

	// Pass 1: append every new object before resolving any of them.
	newObjects := make([]*domain.Elf, 0, len(pkg.Objects))
	for _, obj := range pkg.Objects {
		db.Objects = append(db.Objects, obj)
		newObjects = append(newObjects, obj)
	}

	// Pass 2: resolve each new object against the now-complete pool.
	for _, obj := range newObjects {
		relinkObject(db, obj, db.Objects)
	}

	// Reverse pass: existing objects may now find a library that was
	// previously missing.
	seekers := make([]*domain.Elf, 0, len(db.Objects)-len(newObjects))
	for _, seeker := range db.Objects {
		if seeker.Owner != pkg {
			seekers = append(seekers, seeker)
		}
	}
	reverseFixInstall(ctx, db, seekers, newObjects, telemetry)
}

// DeletePackage removes the named package from the DB and re-resolves
// every remaining object that depended on one of its Elf objects. Removing
// a package that is not installed is a no-op. Rule stores (including
// per-package library paths) are left untouched; only the explicit rule
// mutators in rules.go remove entries from them.
func DeletePackage(ctx context.Context, db *domain.DB, name string, telemetry ports.Telemetry) {
	pkg := db.FindPackage(name)
	if pkg == nil {
		return
	}

	// Remove the package from the package list.
	packages := make([]*domain.Package, 0, len(db.Packages)-1)
	for _, p := range db.Packages {
		if p != pkg {
			packages = append(packages, p)
		}
	}
	db.Packages = packages

	// Remove its objects from the object pool.
	removed := make(map[*domain.Elf]struct{}, len(pkg.Objects))
	for _, obj := range pkg.Objects {
		removed[obj] = struct{}{}
	}
	objects := make([]*domain.Elf, 0, len(db.Objects)-len(pkg.Objects))
	for _, obj := range db.Objects {
		if _, gone := removed[obj]; !gone {
			objects = append(objects, obj)
		}
	}
	db.Objects = objects

	// Re-resolve every remaining seeker that referenced a removed object.
	reverseFixDelete(ctx, db, db.Objects, pkg.Objects, telemetry)

	// Every Elf the dying package owned has already left db.Objects
	// above. Symlink aliasing only ever happens within a single
	// package's own load, so no other package can hold a live reference
	// to one of these objects — the "refcount falls to 1, drop it" rule
	// from the reference implementation's shared_ptr bookkeeping has no
	// further effect once Go's garbage collector owns the objects.
}

// WipePackages removes every package from the DB, leaving it empty of
// packages and objects but leaving the rule stores untouched.
func WipePackages(db *domain.DB) {
	db.Packages = nil
	db.Objects = nil
}
