package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/engine"
)

func TestLibraryPathInsertAndDelete(t *testing.T) {
	db := domain.NewDB("test")

	assert.True(t, engine.LibraryPathInsert(db, 0, "/opt/lib"))
	assert.Equal(t, []string{"/opt/lib"}, db.LibraryPath)

	assert.True(t, engine.LibraryPathInsert(db, 0, "/opt/other"))
	assert.Equal(t, []string{"/opt/other", "/opt/lib"}, db.LibraryPath)

	assert.False(t, engine.LibraryPathInsert(db, 0, "/opt/other"))

	assert.True(t, engine.LibraryPathDelete(db, "/opt/lib"))
	assert.Equal(t, []string{"/opt/other"}, db.LibraryPath)

	assert.True(t, engine.LibraryPathDelete(db, "0"))
	assert.Empty(t, db.LibraryPath)

	assert.False(t, engine.LibraryPathDelete(db, "0"))
}

func TestPackageLibraryPath(t *testing.T) {
	db := domain.NewDB("test")

	assert.True(t, engine.PackageLibraryPathInsert(db, "libA", 0, "/opt/a/lib"))
	assert.Equal(t, []string{"/opt/a/lib"}, db.PackageLibraryPath["libA"])

	assert.True(t, engine.PackageLibraryPathDelete(db, "libA", "/opt/a/lib"))
	_, ok := db.PackageLibraryPath["libA"]
	assert.False(t, ok)
}

func TestIgnoreFileRules(t *testing.T) {
	db := domain.NewDB("test")

	assert.True(t, engine.IgnoreFileRuleAdd(db, "/usr/lib/libfoo.so"))
	assert.False(t, engine.IgnoreFileRuleAdd(db, "/usr/lib/libfoo.so"))
	assert.True(t, engine.IgnoreFileRuleRemove(db, "/usr/lib/libfoo.so"))
	assert.False(t, engine.IgnoreFileRuleRemove(db, "/usr/lib/libfoo.so"))
}

func TestIgnoreFileRuleRemoveAt(t *testing.T) {
	db := domain.NewDB("test")
	engine.IgnoreFileRuleAdd(db, "/a")
	engine.IgnoreFileRuleAdd(db, "/b")

	assert.True(t, engine.IgnoreFileRuleRemoveAt(db, 0))
	assert.Len(t, db.IgnoreFileRules, 1)
	assert.False(t, engine.IgnoreFileRuleRemoveAt(db, 5))
}

func TestAssumeFoundRules(t *testing.T) {
	db := domain.NewDB("test")
	assert.True(t, engine.AssumeFoundRuleAdd(db, "libc.so.6"))
	assert.False(t, engine.AssumeFoundRuleAdd(db, "libc.so.6"))
	assert.True(t, engine.AssumeFoundRuleRemove(db, "libc.so.6"))
}

func TestBasePackages(t *testing.T) {
	db := domain.NewDB("test")
	assert.True(t, engine.BasePackageAdd(db, "glibc"))
	assert.False(t, engine.BasePackageAdd(db, "glibc"))
	assert.Equal(t, []string{"glibc"}, db.BasePackages)

	assert.True(t, engine.BasePackageAdd(db, "bash"))
	assert.True(t, engine.BasePackageRemoveAt(db, 0))
	assert.Equal(t, []string{"bash"}, db.BasePackages)

	assert.True(t, engine.BasePackageRemove(db, "bash"))
	assert.Empty(t, db.BasePackages)
}
