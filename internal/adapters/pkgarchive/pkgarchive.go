// Package pkgarchive implements the ports.PackageLoader port: it reads a
// package archive member-by-member without unpacking it to disk, parses
// .PKGINFO (or guesses name/version from the filename when absent), and
// hands each regular-file member to an ports.ElfIdentifier, materialising
// symlinks that target an already-parsed member as additional Elf aliases.
package pkgarchive

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.PackageLoader.
type Loader struct {
	identifier ports.ElfIdentifier
}

// New returns a Loader that hands each regular-file archive member to
// identifier to decide whether it is an ELF object worth tracking.
func New(identifier ports.ElfIdentifier) *Loader {
	return &Loader{identifier: identifier}
}

type member struct {
	header *tar.Header
	data   []byte
}

// Load reads the archive at path and returns the Package it describes.
func (l *Loader) Load(path string) (*domain.Package, error) {
	//nolint:gosec // path is a package archive named by the caller, not user-controlled web input
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open package archive")
	}
	defer f.Close()

	tr, closeDecompressor, err := openTar(path, f)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to decompress package archive")
	}
	defer closeDecompressor()

	members, err := readMembers(tr)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read package archive")
	}

	pkg := buildPackageMetadata(members, filepath.Base(path))
	if pkg == nil {
		return nil, zerr.New("could not determine package name/version")
	}

	if err := l.populateObjects(pkg, members); err != nil {
		return nil, err
	}
	return pkg, nil
}

func readMembers(tr *tar.Reader) ([]member, error) {
	var members []member
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch hdr.Typeflag {
		case tar.TypeReg, tar.TypeSymlink:
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, err
			}
			members = append(members, member{header: hdr, data: data})
		default:
			// directories and other special entries contribute
			// neither a file-list entry nor an Elf.
		}
	}
	return members, nil
}

func buildPackageMetadata(members []member, archiveName string) *domain.Package {
	for _, m := range members {
		if archiveMemberName(m.header.Name) == ".PKGINFO" {
			return parsePKGINFO(m.data)
		}
	}
	name, version, err := guessNameVersion(archiveName)
	if err != nil {
		return nil
	}
	return domain.NewPackage(name, version)
}

// populateObjects identifies every regular-file member as an Elf (or skips
// it silently if it does not parse as one) and then materialises every
// symlink member whose target is one of those already-parsed Elfs as an
// additional alias sharing its identification fields.
func (l *Loader) populateObjects(pkg *domain.Package, members []member) error {
	byPath := make(map[string]*domain.Elf, len(members))

	for _, m := range members {
		name := archiveMemberName(m.header.Name)
		if name == ".PKGINFO" {
			continue
		}
		pkg.FileList = append(pkg.FileList, "/"+name)

		if m.header.Typeflag != tar.TypeReg {
			continue
		}
		dirname, basename := domain.SplitArchivePath(name)
		obj, err := l.identifier.Identify(dirname, basename, bytes.NewReader(m.data), int64(len(m.data)))
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to identify archive member"), "member", name)
		}
		if obj == nil {
			continue
		}
		fullPath := domain.NormalizePath("/" + name)
		if _, dup := byPath[fullPath]; dup {
			return zerr.With(domain.ErrDuplicateObject, "path", fullPath)
		}
		pkg.AddObject(obj)
		byPath[fullPath] = obj
	}

	for _, m := range members {
		if m.header.Typeflag != tar.TypeSymlink {
			continue
		}
		name := archiveMemberName(m.header.Name)
		target := resolveSymlinkTarget(name, m.header.Linkname)
		real, ok := byPath[target]
		if !ok {
			continue
		}

		dirname, basename := domain.SplitArchivePath(name)
		alias := aliasOf(real)
		alias.Dirname = dirname
		alias.Basename = basename
		real.RefCount++
		pkg.AddObject(alias)
	}

	return nil
}

// aliasOf returns a new Elf sharing real's ELF identification fields but
// its own fresh resolution state, representing a symlink that points at an
// already-parsed regular file in the same package.
func aliasOf(real *domain.Elf) *domain.Elf {
	alias := domain.NewElf()
	alias.Class = real.Class
	alias.Data = real.Data
	alias.OSABI = real.OSABI
	alias.ABIVersion = real.ABIVersion
	alias.Needed = real.Needed
	alias.RPath = real.RPath
	alias.RPathSet = real.RPathSet
	alias.RunPath = real.RunPath
	alias.RunPathSet = real.RunPathSet
	alias.Interpreter = real.Interpreter
	alias.InterpreterSet = real.InterpreterSet
	return alias
}

// archiveMemberName strips a leading "./" or "/" from a tar entry name.
func archiveMemberName(name string) string {
	name = strings.TrimPrefix(name, "./")
	return strings.TrimPrefix(name, "/")
}

// resolveSymlinkTarget resolves a symlink's Linkname relative to its own
// directory (if relative) into an absolute, normalised archive path.
func resolveSymlinkTarget(symlinkName, linkname string) string {
	if strings.HasPrefix(linkname, "/") {
		return domain.NormalizePath(linkname)
	}
	dir := filepath.Dir("/" + symlinkName)
	return domain.NormalizePath(filepath.Join(dir, linkname))
}
