package engine

import (
	"context"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
)

// FindingKind classifies one diagnostic produced by CheckIntegrity.
type FindingKind int

const (
	// MissingDepend reports a depends/optdepends entry that could not be
	// resolved against pkgmap/replacemap/providemap.
	MissingDepend FindingKind = iota
	// BrokenObject reports an Elf whose needed soname is not pulled in
	// by the package's installed closure.
	BrokenObject
	// Conflict reports a package whose conflicts list names a package (or
	// provide) already in the same installed closure. It is only reported
	// when a VersionComparer is available.
	Conflict
	// FileConflict reports a file path owned by two or more packages
	// that are not in a mutual conflicts relation.
	FileConflict
	// ReplacedButDepended reports a package that is replaced by another
	// installed package yet is still separately depended upon elsewhere
	// in the same closure — a package.cpp-style diagnostic that a
	// complete find_depend port produces for free once replacemap
	// exists.
	ReplacedButDepended
)

// String returns the finding kind's lowercase, hyphenated name.
func (k FindingKind) String() string {
	switch k {
	case MissingDepend:
		return "missing-depend"
	case BrokenObject:
		return "broken-object"
	case Conflict:
		return "conflict"
	case FileConflict:
		return "file-conflict"
	case ReplacedButDepended:
		return "replaced-but-depended"
	default:
		return "unknown"
	}
}

// Finding is a single integrity-check diagnostic.
type Finding struct {
	Kind FindingKind

	// Package is the package the finding is reported against: the checked
	// package for MissingDepend and BrokenObject, the package whose
	// conflicts/replaces entry triggered a Conflict or ReplacedButDepended
	// (which may be one pulled in by a recursive call), or the first owner
	// of the path for FileConflict.
	Package string

	// Detail is the dependency expression, soname, conflicting package
	// name, or file path the finding concerns, depending on Kind.
	Detail string

	// Other is a second package name, used by Conflict and
	// ReplacedButDepended. Others is used only by FileConflict and lists
	// every owner of the path after Package.
	Other string
	Others []string
}

// closure maps a package name to the package whose install_recursive call
// caused it to be installed, and also the set of provide/replace names it
// contributed, for the installed lookup used mid-recursion.
type closure struct {
	installed map[string]*domain.Package
}

func newClosure() *closure {
	return &closure{installed: make(map[string]*domain.Package)}
}

func (c *closure) has(name string) bool {
	_, ok := c.installed[name]
	return ok
}

// integrityMaps is the set of lookup tables CheckIntegrity builds once and
// shares across every package's install_recursive simulation.
type integrityMaps struct {
	pkgmap      map[string]*domain.Package
	providemap  map[string][]*domain.Package
	replacemap  map[string][]*domain.Package
	objmap      map[string][]*domain.Elf
	versionCmp  ports.VersionComparer
}

func buildIntegrityMaps(db *domain.DB, cmp ports.VersionComparer) *integrityMaps {
	m := &integrityMaps{
		pkgmap:     make(map[string]*domain.Package, len(db.Packages)),
		providemap: make(map[string][]*domain.Package),
		replacemap: make(map[string][]*domain.Package),
		objmap:     make(map[string][]*domain.Elf, len(db.Objects)),
		versionCmp: cmp,
	}
	for _, pkg := range db.Packages {
		m.pkgmap[pkg.Name] = pkg
		for _, p := range pkg.StrippedProvides() {
			m.providemap[p] = append(m.providemap[p], pkg)
		}
		for _, r := range pkg.StrippedReplaces() {
			m.replacemap[r] = append(m.replacemap[r], pkg)
		}
	}
	for _, obj := range db.Objects {
		m.objmap[obj.Basename] = append(m.objmap[obj.Basename], obj)
	}
	return m
}

// findDepend resolves a dependency/optdepends expression against pkgmap,
// then replacemap, then providemap, in that order, honouring a version
// operator when a VersionComparer is available.
func (m *integrityMaps) findDepend(expr string) *domain.Package {
	name, op, ver := domain.SplitDepString(expr)

	if pkg, ok := m.pkgmap[name]; ok {
		if m.satisfiesDirect(pkg, op, ver) {
			return pkg
		}
	}
	if candidates, ok := m.replacemap[name]; ok {
		for _, pkg := range candidates {
			if m.satisfiesVia(pkg, name, op, ver) {
				return pkg
			}
		}
	}
	if candidates, ok := m.providemap[name]; ok {
		for _, pkg := range candidates {
			if m.satisfiesVia(pkg, name, op, ver) {
				return pkg
			}
		}
	}
	return nil
}

// satisfiesDirect checks a candidate matched directly by package name: its
// own version must satisfy (op, ver), or there is no operator to satisfy.
func (m *integrityMaps) satisfiesDirect(pkg *domain.Package, op, ver string) bool {
	if op == "" || m.versionCmp == nil {
		return true
	}
	return m.versionCmp.Satisfies(pkg.Version, op, ver)
}

// satisfiesVia checks a candidate matched through replacemap/providemap
// under depName: either the package's own version satisfies the
// constraint, or one of its provides entries carries a version operator of
// its own that the satisfaction table accepts against (op, ver).
func (m *integrityMaps) satisfiesVia(pkg *domain.Package, depName, op, ver string) bool {
	if op == "" || m.versionCmp == nil {
		return true
	}
	if m.versionCmp.Satisfies(pkg.Version, op, ver) {
		return true
	}
	for _, provide := range pkg.Provides {
		pname, pop, pver := domain.SplitDepString(provide)
		if pname != depName || pop == "" {
			continue
		}
		if operatorsCompatible(op, ver, pop, pver, m.versionCmp) {
			return true
		}
	}
	return false
}

// operatorsCompatible implements the cross-operator satisfaction table: a
// dependency "op ver" is satisfied by a provide carrying "pop pver" when
// the provide's own constraint guarantees the dependency's. ret is
// cmp(ver, pver), the dependency version compared against the provide's.
func operatorsCompatible(op, ver, pop, pver string, cmp ports.VersionComparer) bool {
	ret := cmp.Compare(ver, pver)

	if op == pop {
		switch op {
		case "=":
			return ret == 0
		case "!=":
			return ret != 0
		case ">=":
			return ret < 0
		case ">":
			return ret <= 0
		case "<=":
			return ret > 0
		case "<":
			return ret >= 0
		}
		return false
	}

	switch op {
	case "=":
		// An exact dependency cannot be satisfied by a non-exact provide.
		return false
	case "!=":
		switch pop {
		case "=":
			return ret != 0
		case ">":
			return ret > 0
		case ">=":
			return ret >= 0
		case "<":
			return ret < 0
		case "<=":
			return ret <= 0
		}
	case ">=":
		switch pop {
		case "=", ">", ">=":
			return ret < 0
		}
	case ">":
		switch pop {
		case "=", ">", ">=":
			return ret <= 0
		}
	case "<=":
		switch pop {
		case "=", "<", "<=":
			return ret > 0
		}
	case "<":
		switch pop {
		case "=", "<", "<=":
			return ret >= 0
		}
	}
	return false
}

// installRecursive performs the depth-first closure for pkg, reporting
// missing depends/optdepends only at the outermost (showmsg) call, and
// appends Conflict/ReplacedButDepended findings as it discovers them.
func installRecursive(m *integrityMaps, c *closure, pkg *domain.Package, showmsg bool, findings *[]Finding) {
	if c.has(pkg.Name) {
		return
	}
	c.installed[pkg.Name] = pkg
	for _, p := range pkg.StrippedProvides() {
		if _, ok := c.installed[p]; !ok {
			c.installed[p] = pkg
		}
	}
	for _, r := range pkg.StrippedReplaces() {
		if existing, ok := c.installed[r]; ok && existing != pkg {
			*findings = append(*findings, Finding{
				Kind:    ReplacedButDepended,
				Package: pkg.Name,
				Detail:  r,
				Other:   existing.Name,
			})
		}
		if _, ok := c.installed[r]; !ok {
			c.installed[r] = pkg
		}
	}

	for _, dep := range pkg.Depends {
		target := m.findDepend(dep)
		if target == nil {
			if showmsg {
				*findings = append(*findings, Finding{
					Kind:    MissingDepend,
					Package: pkg.Name,
					Detail:  dep,
				})
			}
			continue
		}
		installRecursive(m, c, target, false, findings)
	}
	for _, dep := range pkg.OptDepends {
		target := m.findDepend(dep)
		if target == nil {
			if showmsg {
				*findings = append(*findings, Finding{
					Kind:    MissingDepend,
					Package: pkg.Name,
					Detail:  dep,
				})
			}
			continue
		}
		installRecursive(m, c, target, false, findings)
	}

	if m.versionCmp != nil {
		for _, conflict := range pkg.Conflicts {
			name := domain.StripVersion(conflict)
			if existing, ok := c.installed[name]; ok && existing != pkg {
				*findings = append(*findings, Finding{
					Kind:    Conflict,
					Package: pkg.Name,
					Detail:  name,
					Other:   existing.Name,
				})
			}
		}
	}
}

// mutuallyConflicting reports whether a and b each list the other in
// conflicts (name-stripped).
func mutuallyConflicting(a, b *domain.Package) bool {
	return hasConflict(a, b.Name) && hasConflict(b, a.Name)
}

func hasConflict(pkg *domain.Package, name string) bool {
	for _, c := range pkg.Conflicts {
		if domain.StripVersion(c) == name {
			return true
		}
	}
	return false
}

// CheckIntegrity simulates a recursive installation of each package in
// targets (or every package in db if targets is nil), starting from
// db.BasePackages, and reports missing dependencies, objects whose needed
// sonames are not pulled in by the closure, conflicts and file conflicts.
//
// When cmp is nil, dependency expressions are resolved by stripped name
// only and no Conflict findings are reported; ReplacedButDepended does not
// depend on cmp.
func CheckIntegrity(ctx context.Context, db *domain.DB, targets []string, cmp ports.VersionComparer, telemetry ports.Telemetry) []Finding {
	m := buildIntegrityMaps(db, cmp)

	toCheck := targets
	if toCheck == nil {
		toCheck = make([]string, len(db.Packages))
		for i, pkg := range db.Packages {
			toCheck[i] = pkg.Name
		}
	}

	var vertex ports.Vertex
	if telemetry != nil {
		vertex = telemetry.StartVertex(ctx, "check-integrity", len(toCheck))
	}

	var findings []Finding
	for i, name := range toCheck {
		pkg := m.pkgmap[name]
		if pkg == nil {
			continue
		}

		c := newClosure()
		for _, baseName := range db.BasePackages {
			if base := m.pkgmap[baseName]; base != nil {
				installRecursive(m, c, base, false, &findings)
			}
		}
		installRecursive(m, c, pkg, true, &findings)

		for _, obj := range pkg.Objects {
			for _, needed := range obj.Needed {
				candidates := m.objmap[needed]
				pulledIn := false
				for _, cand := range candidates {
					if cand.Owner != nil && c.has(cand.Owner.Name) {
						pulledIn = true
						break
					}
				}
				if !pulledIn {
					findings = append(findings, Finding{
						Kind:    BrokenObject,
						Package: pkg.Name,
						Detail:  needed,
					})
				}
			}
		}

		if vertex != nil {
			vertex.Progress(i + 1)
		}
	}

	findings = append(findings, checkFileConflicts(db)...)

	if vertex != nil {
		vertex.Complete(nil)
	}
	return findings
}

// checkFileConflicts builds file_counter[path] -> packages. An owner is
// dropped from a path's list when it is in a mutual conflicts relation with
// at least one other owner of that path; the path is reported when two or
// more owners remain.
func checkFileConflicts(db *domain.DB) []Finding {
	fileCounter := make(map[string][]*domain.Package)
	for _, pkg := range db.Packages {
		for _, f := range pkg.FileList {
			fileCounter[f] = append(fileCounter[f], pkg)
		}
	}

	var findings []Finding
	for path, owners := range fileCounter {
		if len(owners) < 2 {
			continue
		}
		filtered := make([]*domain.Package, 0, len(owners))
		for i, a := range owners {
			exempt := false
			for j, b := range owners {
				if i == j {
					continue
				}
				if mutuallyConflicting(a, b) {
					exempt = true
					break
				}
			}
			if !exempt {
				filtered = append(filtered, a)
			}
		}
		if len(filtered) < 2 {
			continue
		}
		names := make([]string, len(filtered))
		for i, p := range filtered {
			names[i] = p.Name
		}
		findings = append(findings, Finding{
			Kind:    FileConflict,
			Package: names[0],
			Detail:  path,
			Others:  names[1:],
		})
	}
	return findings
}
