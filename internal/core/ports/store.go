package ports

import (
	"io"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
)

// Store defines persistence for a DB: a single load/save round trip through
// an arbitrary byte stream, leaving the wire format to the adapter.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type Store interface {
	// Load reads a DB from r. The returned DB's LoadedVersion records the
	// on-disk format version so callers can detect and warn about a
	// downgrade-then-resave across incompatible versions.
	Load(r io.Reader) (*domain.DB, error)

	// Save writes db to w in the store's native format.
	Save(w io.Writer, db *domain.DB) error
}

// PackageLoader reads a package archive (and its member objects) off disk
// without unpacking it, producing the Package/Elf domain records pkgdepdb
// tracks.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type PackageLoader interface {
	// Load parses the package archive at path and returns the resulting
	// Package, including a fully populated Objects slice.
	Load(path string) (*domain.Package, error)
}

// ElfIdentifier extracts ELF object metadata (class, data encoding, OSABI,
// needed sonames, RPATH/RUNPATH, interpreter) from a single member's bytes.
type ElfIdentifier interface {
	// Identify parses the ELF header and dynamic section of r and fills in
	// an Elf record for the object named by dirname/basename. It returns
	// (nil, nil) if r does not look like an ELF object pkgdepdb tracks.
	Identify(dirname, basename string, r io.ReaderAt, size int64) (*domain.Elf, error)
}

// VersionComparer implements the distro version-comparison and
// operator-satisfaction semantics used by the integrity checker to decide
// whether a provided version satisfies a dependency constraint.
type VersionComparer interface {
	// Compare returns <0, 0, or >0 as a < b, a == b, or a > b under the
	// distro's version ordering rules.
	Compare(a, b string) int

	// Satisfies reports whether a package or provide carrying version
	// ver satisfies a dependency expressed as "op wantVer" (e.g. ">=",
	// "1.2.0"). op is one of "", "=", "!=", "<", "<=", ">", ">="; an
	// empty op always satisfies.
	Satisfies(ver, op, wantVer string) bool
}
