// Package dbstore implements the ports.Store persisted-database adapter:
// a gzip-compressed JSON encoding of a domain.DB, versioned so a future
// format revision can detect and warn about loading an older database.
package dbstore

import (
	"compress/gzip"
	"encoding/json"
	"io"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"go.trai.ch/zerr"
)

// FormatVersion is the current on-disk format version written by Save and
// recorded into domain.DB.LoadedVersion by Load.
const FormatVersion = 1

// Store implements ports.Store over a gzip-compressed JSON wire format.
type Store struct{}

// New returns a ready-to-use Store. There is no per-instance state: all
// state lives in the DB being loaded or saved.
func New() *Store {
	return &Store{}
}

type wireElf struct {
	Dirname        string   `json:"dirname"`
	Basename       string   `json:"basename"`
	Class          uint8    `json:"class"`
	Data           uint8    `json:"data"`
	OSABI          uint8    `json:"osabi"`
	ABIVersion     uint8    `json:"abi_version"`
	Needed         []string `json:"needed,omitempty"`
	RPath          string   `json:"rpath,omitempty"`
	RPathSet       bool     `json:"rpath_set,omitempty"`
	RunPath        string   `json:"runpath,omitempty"`
	RunPathSet     bool     `json:"runpath_set,omitempty"`
	Interpreter    string   `json:"interpreter,omitempty"`
	InterpreterSet bool     `json:"interpreter_set,omitempty"`
	RefCount       int      `json:"refcount"`
	// ReqFound holds indices into the flattened, save-order object list.
	ReqFound   []int    `json:"req_found,omitempty"`
	ReqMissing []string `json:"req_missing,omitempty"`
}

type wirePackage struct {
	Name       string    `json:"name"`
	Version    string    `json:"version"`
	Depends    []string  `json:"depends,omitempty"`
	OptDepends []string  `json:"optdepends,omitempty"`
	Provides   []string  `json:"provides,omitempty"`
	Replaces   []string  `json:"replaces,omitempty"`
	Conflicts  []string  `json:"conflicts,omitempty"`
	Groups     []string  `json:"groups,omitempty"`
	FileList   []string  `json:"filelist,omitempty"`
	Objects    []wireElf `json:"objects,omitempty"`
}

type wireDB struct {
	Version int `json:"version"`

	Name     string        `json:"name"`
	Packages []wirePackage `json:"packages"`

	LibraryPath            []string            `json:"library_path,omitempty"`
	PackageLibraryPath     map[string][]string `json:"package_library_path,omitempty"`
	IgnoreFileRules        []string            `json:"ignore_file_rules,omitempty"`
	AssumeFoundRules       []string            `json:"assume_found_rules,omitempty"`
	BasePackages           []string            `json:"base_packages,omitempty"`
	StrictLinking          bool                `json:"strict_linking,omitempty"`
	MaxJobs                int                 `json:"max_jobs,omitempty"`
	ContainsPackageDepends bool                `json:"contains_package_depends,omitempty"`
	ContainsGroups         bool                `json:"contains_groups,omitempty"`
	ContainsFileLists      bool                `json:"contains_filelists,omitempty"`
}

// Save writes db to w as gzip-compressed JSON.
func (s *Store) Save(w io.Writer, db *domain.DB) error {
	gz := gzip.NewWriter(w)

	index := make(map[*domain.Elf]int, len(db.Objects))
	for i, obj := range db.Objects {
		index[obj] = i
	}

	wire := wireDB{
		Version:                FormatVersion,
		Name:                   db.Name,
		LibraryPath:            db.LibraryPath,
		PackageLibraryPath:     db.PackageLibraryPath,
		IgnoreFileRules:        setToSlice(db.IgnoreFileRules),
		AssumeFoundRules:       setToSlice(db.AssumeFoundRules),
		BasePackages:           db.BasePackages,
		StrictLinking:          db.StrictLinking,
		MaxJobs:                db.MaxJobs,
		ContainsPackageDepends: db.ContainsPackageDepends,
		ContainsGroups:         db.ContainsGroups,
		ContainsFileLists:      db.ContainsFileLists,
	}

	for _, pkg := range db.Packages {
		wp := wirePackage{
			Name:       pkg.Name,
			Version:    pkg.Version,
			Depends:    pkg.Depends,
			OptDepends: pkg.OptDepends,
			Provides:   pkg.Provides,
			Replaces:   pkg.Replaces,
			Conflicts:  pkg.Conflicts,
			Groups:     setToSlice(pkg.Groups),
			FileList:   pkg.FileList,
		}
		for _, obj := range pkg.Objects {
			wp.Objects = append(wp.Objects, elfToWire(obj, index))
		}
		wire.Packages = append(wire.Packages, wp)
	}

	enc := json.NewEncoder(gz)
	if err := enc.Encode(wire); err != nil {
		return zerr.Wrap(err, "failed to encode database")
	}
	if err := gz.Close(); err != nil {
		return zerr.Wrap(err, "failed to close database writer")
	}
	return nil
}

// Load reads a DB previously written by Save.
func (s *Store) Load(r io.Reader) (*domain.DB, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open database reader")
	}
	defer gz.Close()

	var wire wireDB
	if err := json.NewDecoder(gz).Decode(&wire); err != nil {
		return nil, zerr.Wrap(err, "failed to decode database")
	}

	db := domain.NewDB(wire.Name)
	db.LoadedVersion = wire.Version
	db.LibraryPath = wire.LibraryPath
	if wire.PackageLibraryPath != nil {
		db.PackageLibraryPath = wire.PackageLibraryPath
	}
	db.IgnoreFileRules = sliceToSet(wire.IgnoreFileRules)
	db.AssumeFoundRules = sliceToSet(wire.AssumeFoundRules)
	db.BasePackages = wire.BasePackages
	db.StrictLinking = wire.StrictLinking
	db.MaxJobs = wire.MaxJobs
	db.ContainsPackageDepends = wire.ContainsPackageDepends
	db.ContainsGroups = wire.ContainsGroups
	db.ContainsFileLists = wire.ContainsFileLists

	// First pass: materialise every Elf and Package, in save order, so
	// the flattened object index lines up with what Save wrote.
	var flat []*domain.Elf
	var wireFlat []wireElf
	for _, wp := range wire.Packages {
		pkg := domain.NewPackage(wp.Name, wp.Version)
		pkg.Depends = wp.Depends
		pkg.OptDepends = wp.OptDepends
		pkg.Provides = wp.Provides
		pkg.Replaces = wp.Replaces
		pkg.Conflicts = wp.Conflicts
		pkg.Groups = sliceToSet(wp.Groups)
		pkg.FileList = wp.FileList

		for _, we := range wp.Objects {
			obj := elfFromWire(we)
			pkg.AddObject(obj)
			flat = append(flat, obj)
			wireFlat = append(wireFlat, we)
		}

		db.Packages = append(db.Packages, pkg)
		db.Objects = append(db.Objects, pkg.Objects...)
	}

	// Second pass: resolve ReqFound indices now that the flat slice is
	// complete.
	for i, we := range wireFlat {
		obj := flat[i]
		for _, idx := range we.ReqFound {
			if idx >= 0 && idx < len(flat) {
				obj.AddFound(flat[idx])
			}
		}
		for _, soname := range we.ReqMissing {
			obj.AddMissing(soname)
		}
	}

	return db, nil
}

func elfToWire(e *domain.Elf, index map[*domain.Elf]int) wireElf {
	we := wireElf{
		Dirname:        e.Dirname,
		Basename:       e.Basename,
		Class:          uint8(e.Class),
		Data:           uint8(e.Data),
		OSABI:          uint8(e.OSABI),
		ABIVersion:     e.ABIVersion,
		Needed:         e.Needed,
		RPath:          e.RPath,
		RPathSet:       e.RPathSet,
		RunPath:        e.RunPath,
		RunPathSet:     e.RunPathSet,
		Interpreter:    e.Interpreter,
		InterpreterSet: e.InterpreterSet,
		RefCount:       e.RefCount,
	}
	for lib := range e.ReqFound {
		if idx, ok := index[lib]; ok {
			we.ReqFound = append(we.ReqFound, idx)
		}
	}
	for soname := range e.ReqMissing {
		we.ReqMissing = append(we.ReqMissing, soname)
	}
	return we
}

func elfFromWire(we wireElf) *domain.Elf {
	e := domain.NewElf()
	e.Dirname = we.Dirname
	e.Basename = we.Basename
	e.Class = domain.ElfClass(we.Class)
	e.Data = domain.ElfData(we.Data)
	e.OSABI = domain.ElfOSABI(we.OSABI)
	e.ABIVersion = we.ABIVersion
	e.Needed = we.Needed
	e.RPath = we.RPath
	e.RPathSet = we.RPathSet
	e.RunPath = we.RunPath
	e.RunPathSet = we.RunPathSet
	e.Interpreter = we.Interpreter
	e.InterpreterSet = we.InterpreterSet
	if we.RefCount > 0 {
		e.RefCount = we.RefCount
	}
	return e
}

func setToSlice(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func sliceToSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, v := range list {
		set[v] = struct{}{}
	}
	return set
}
