package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/resolver"
)

func elfWith(class domain.ElfClass, data domain.ElfData, osabi domain.ElfOSABI) *domain.Elf {
	e := domain.NewElf()
	e.Class, e.Data, e.OSABI = class, data, osabi
	return e
}

func TestCanUse_SameClassDataABI(t *testing.T) {
	a := elfWith(domain.ELFCLASS64, domain.ELFDATA2LSB, 3)
	b := elfWith(domain.ELFCLASS64, domain.ELFDATA2LSB, 3)
	assert.True(t, resolver.CanUse(a, b, true))
}

func TestCanUse_DifferentClassRejected(t *testing.T) {
	a := elfWith(domain.ELFCLASS64, domain.ELFDATA2LSB, 0)
	b := elfWith(domain.ELFCLASS32, domain.ELFDATA2LSB, 0)
	assert.False(t, resolver.CanUse(a, b, false))
}

func TestCanUse_OSABIMismatchStrict(t *testing.T) {
	a := elfWith(domain.ELFCLASS64, domain.ELFDATA2LSB, 3)
	b := elfWith(domain.ELFCLASS64, domain.ELFDATA2LSB, domain.ELFOSABINone)
	assert.False(t, resolver.CanUse(a, b, true))
	assert.True(t, resolver.CanUse(a, b, false))
}

func TestCanUse_OSABIMismatchBothNamed(t *testing.T) {
	a := elfWith(domain.ELFCLASS64, domain.ELFDATA2LSB, 3)
	b := elfWith(domain.ELFCLASS64, domain.ELFDATA2LSB, 9)
	assert.False(t, resolver.CanUse(a, b, false))
}
