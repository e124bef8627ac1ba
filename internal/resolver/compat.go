package resolver

import "github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"

// CanUse decides whether Elf a may dynamically load Elf b: same Class,
// same Data, and either the same OSABI or, when strict is false, at least
// one side has OSABI 0 ("none/SysV").
func CanUse(a, b *domain.Elf, strict bool) bool {
	if a.Class != b.Class || a.Data != b.Data {
		return false
	}
	if a.OSABI == b.OSABI {
		return true
	}
	if !strict && (a.OSABI == domain.ELFOSABINone || b.OSABI == domain.ELFOSABINone) {
		return true
	}
	return false
}
