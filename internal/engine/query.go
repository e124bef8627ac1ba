package engine

import "github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"

// ListPackages returns every installed package in insertion order,
// optionally filtered by group membership when group is non-empty.
func ListPackages(db *domain.DB, group string) []*domain.Package {
	if group == "" {
		out := make([]*domain.Package, len(db.Packages))
		copy(out, db.Packages)
		return out
	}
	var out []*domain.Package
	for _, pkg := range db.Packages {
		if pkg.HasGroup(group) {
			out = append(out, pkg)
		}
	}
	return out
}

// ListObjects returns every Elf in the DB's object pool, in insertion
// order, optionally filtered to those owned by ownerName when non-empty.
func ListObjects(db *domain.DB, ownerName string) []*domain.Elf {
	if ownerName == "" {
		out := make([]*domain.Elf, len(db.Objects))
		copy(out, db.Objects)
		return out
	}
	var out []*domain.Elf
	for _, obj := range db.Objects {
		if obj.Owner != nil && obj.Owner.Name == ownerName {
			out = append(out, obj)
		}
	}
	return out
}

// ListBrokenObjects returns every Elf with at least one unresolved
// (req_missing) soname.
func ListBrokenObjects(db *domain.DB) []*domain.Elf {
	var out []*domain.Elf
	for _, obj := range db.Objects {
		if len(obj.ReqMissing) > 0 {
			out = append(out, obj)
		}
	}
	return out
}

// ListFiles returns every file path contributed by every installed
// package, paired with the owning package name, in package insertion
// order.
type FileEntry struct {
	Path    string
	Package string
}

func ListFiles(db *domain.DB) []FileEntry {
	var out []FileEntry
	for _, pkg := range db.Packages {
		for _, f := range pkg.FileList {
			out = append(out, FileEntry{Path: f, Package: pkg.Name})
		}
	}
	return out
}

// FindOwner returns the package owning the Elf with the given dirname and
// basename, or nil if no such object is installed.
func FindOwner(db *domain.DB, dirname, basename string) *domain.Package {
	for _, obj := range db.Objects {
		if obj.Dirname == dirname && obj.Basename == basename {
			return obj.Owner
		}
	}
	return nil
}

// FindObjectsByBasename returns every Elf in the DB sharing the given
// basename, in insertion order — the same candidate set the resolver
// considers for a dependency on that soname.
func FindObjectsByBasename(db *domain.DB, basename string) []*domain.Elf {
	var out []*domain.Elf
	for _, obj := range db.Objects {
		if obj.Basename == basename {
			out = append(out, obj)
		}
	}
	return out
}
