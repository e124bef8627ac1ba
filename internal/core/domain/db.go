package domain

// DB holds the full virtual-installation state: every installed package,
// the flat pool of Elf objects the resolver works against, and the policy
// inputs (rule stores) that shape resolution.
//
// DB is not internally synchronised. InstallPackage, DeletePackage and the
// rule-store mutators are expected to be called from a single goroutine.
// RelinkAll, and the reverse pass of InstallPackage and DeletePackage once
// it crosses ParallelReverseThreshold, fan out internally and treat the DB
// as read-only input for the duration of the fan-out; CheckIntegrity runs
// serially.
type DB struct {
	Name string

	// Packages is the ordered list of installed packages. Order is
	// insertion order and is user-visible (preserved across save/load).
	Packages []*Package

	// Objects is the flat pool of every Elf object across every
	// installed package, in insertion order. This is the resolver's
	// working set and the deterministic tiebreak for FindFor.
	Objects []*Elf

	// LibraryPath is the global additional search path list, order
	// significant.
	LibraryPath []string

	// PackageLibraryPath maps a package name to its own ordered list of
	// additional search paths.
	PackageLibraryPath map[string][]string

	// IgnoreFileRules is the set of full paths ("dirname/basename") to
	// skip entirely during linking.
	IgnoreFileRules map[string]struct{}

	// AssumeFoundRules is the set of sonames that must never appear as
	// missing, regardless of whether a concrete object satisfies them.
	AssumeFoundRules map[string]struct{}

	// BasePackages is the ordered, user-visible set of package names
	// used by CheckIntegrity to seed a minimal installation.
	BasePackages []string

	StrictLinking bool

	// MaxJobs controls the worker pool used by RelinkAll and by the
	// install/remove reverse pass: 0 means "use all CPUs", 1 forces the
	// serial path.
	MaxJobs int

	// LoadedVersion records the on-disk format version this DB was
	// loaded from, for backward-compat decisions by the persisted store.
	LoadedVersion int

	ContainsPackageDepends bool
	ContainsGroups         bool
	ContainsFileLists      bool
}

// NewDB returns an empty, ready-to-use DB.
func NewDB(name string) *DB {
	return &DB{
		Name:               name,
		PackageLibraryPath: make(map[string][]string),
		IgnoreFileRules:    make(map[string]struct{}),
		AssumeFoundRules:   make(map[string]struct{}),
	}
}

// FindPackage returns the package with the given name, or nil.
func (db *DB) FindPackage(name string) *Package {
	for _, p := range db.Packages {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// IsBasePackage reports whether name is in the base-packages seed set.
func (db *DB) IsBasePackage(name string) bool {
	for _, n := range db.BasePackages {
		if n == name {
			return true
		}
	}
	return false
}

// IsIgnoredFile reports whether the object's full path is in the
// ignore-file rule set.
func (db *DB) IsIgnoredFile(obj *Elf) bool {
	_, ok := db.IgnoreFileRules[obj.Path()]
	return ok
}

// IsAssumedFound reports whether soname is in the assume-found rule set.
func (db *DB) IsAssumedFound(soname string) bool {
	_, ok := db.AssumeFoundRules[soname]
	return ok
}
