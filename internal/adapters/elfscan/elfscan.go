// Package elfscan implements the ports.ElfIdentifier port over the
// standard library's debug/elf package: it reads just enough of an ELF
// object's header and dynamic section to populate a domain.Elf, without
// resolving or loading any symbol.
package elfscan

import (
	"bufio"
	stdelf "debug/elf"
	"io"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
)

// Identifier implements ports.ElfIdentifier.
type Identifier struct{}

// New returns a ready-to-use Identifier.
func New() *Identifier { return &Identifier{} }

// Identify parses the ELF header and dynamic section visible through r. It
// returns (nil, nil) when r does not parse as an ELF object at all —
// callers treat that as "not tracked", not an error, matching the
// malformed-ELF handling in the spec's error taxonomy.
func (Identifier) Identify(dirname, basename string, r io.ReaderAt, size int64) (*domain.Elf, error) {
	f, err := stdelf.NewFile(r)
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	obj := domain.NewElf()
	obj.Dirname = dirname
	obj.Basename = basename
	obj.Class = domain.ElfClass(f.Class)
	obj.Data = domain.ElfData(f.Data)
	obj.OSABI = domain.ElfOSABI(f.OSABI)
	obj.ABIVersion = f.ABIVersion

	if libs, err := f.ImportedLibraries(); err == nil {
		obj.Needed = libs
	}

	if rpath, ok := dynString(f, stdelf.DT_RPATH); ok {
		obj.RPath = rpath
		obj.RPathSet = true
	}
	if runpath, ok := dynString(f, stdelf.DT_RUNPATH); ok {
		obj.RunPath = runpath
		obj.RunPathSet = true
	}

	if interp, ok := readInterp(f); ok {
		obj.Interpreter = interp
		obj.InterpreterSet = true
	}

	return obj, nil
}

func dynString(f *stdelf.File, tag stdelf.DynTag) (string, bool) {
	vals, err := f.DynString(tag)
	if err != nil || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func readInterp(f *stdelf.File) (string, bool) {
	for _, prog := range f.Progs {
		if prog.Type != stdelf.PT_INTERP {
			continue
		}
		data, err := io.ReadAll(bufio.NewReader(prog.Open()))
		if err != nil {
			return "", false
		}
		for i, b := range data {
			if b == 0 {
				data = data[:i]
				break
			}
		}
		return string(data), true
	}
	return "", false
}
