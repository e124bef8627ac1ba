package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/resolver"
)

func TestFinds_RPathTakesPriority(t *testing.T) {
	obj := domain.NewElf()
	obj.RPath = "/opt/app/lib"
	obj.RPathSet = true

	assert.True(t, resolver.Finds(obj, "/opt/app/lib", nil, nil))
	assert.False(t, resolver.Finds(obj, "/opt/other/lib", nil, nil))
}

func TestFinds_RunPath(t *testing.T) {
	obj := domain.NewElf()
	obj.RunPath = "/opt/app/lib"
	obj.RunPathSet = true

	assert.True(t, resolver.Finds(obj, "/opt/app/lib", nil, nil))
}

func TestFinds_TrustedPaths(t *testing.T) {
	obj := domain.NewElf()
	assert.True(t, resolver.Finds(obj, "/lib", nil, nil))
	assert.True(t, resolver.Finds(obj, "/usr/lib", nil, nil))
	assert.False(t, resolver.Finds(obj, "/opt/lib", nil, nil))
}

func TestFinds_GlobalLibraryPath(t *testing.T) {
	obj := domain.NewElf()
	assert.True(t, resolver.Finds(obj, "/opt/lib", nil, []string{"/opt/lib"}))
}

func TestFinds_PerPackageExtraPath(t *testing.T) {
	obj := domain.NewElf()
	assert.True(t, resolver.Finds(obj, "/opt/app/lib", []string{"/opt/app/lib"}, nil))
	assert.False(t, resolver.Finds(obj, "/opt/app/lib", nil, nil))
}
