// Package domain contains the core domain model for pkgdepdb: the packages
// and ELF objects that make up a virtual installation, and the database
// that tracks how they link against one another.
package domain

// Package owns an ordered list of the Elf objects it contributed to a
// virtual installation, plus the dependency metadata consumed by the
// integrity checker.
type Package struct {
	Name    string
	Version string

	Depends    []string
	OptDepends []string
	Provides   []string
	Replaces   []string
	Conflicts  []string
	Groups     map[string]struct{}
	FileList   []string

	// Objects is the ordered list of Elf objects this package contributed.
	// Order is insertion order and is preserved across save/load.
	Objects []*Elf
}

// NewPackage returns an empty Package ready to be populated by a loader.
func NewPackage(name, version string) *Package {
	return &Package{
		Name:    name,
		Version: version,
		Groups:  make(map[string]struct{}),
	}
}

// AddObject appends obj to the package's object list and sets its Owner.
func (p *Package) AddObject(obj *Elf) {
	obj.Owner = p
	p.Objects = append(p.Objects, obj)
}

// HasGroup reports whether the package belongs to the named group.
func (p *Package) HasGroup(name string) bool {
	_, ok := p.Groups[name]
	return ok
}

// StrippedProvides returns the package's Provides entries with any
// version-operator suffix removed, preserving order.
func (p *Package) StrippedProvides() []string {
	out := make([]string, len(p.Provides))
	for i, s := range p.Provides {
		out[i] = StripVersion(s)
	}
	return out
}

// StrippedReplaces returns the package's Replaces entries with any
// version-operator suffix removed, preserving order.
func (p *Package) StrippedReplaces() []string {
	out := make([]string, len(p.Replaces))
	for i, s := range p.Replaces {
		out[i] = StripVersion(s)
	}
	return out
}
