package dbstore_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/dbstore"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
)

func buildTestDB() *domain.DB {
	db := domain.NewDB("test")
	db.LibraryPath = []string{"/opt/lib"}
	db.StrictLinking = true
	db.BasePackages = []string{"libA"}

	pkgA := domain.NewPackage("libA", "1.0")
	objFoo := domain.NewElf()
	objFoo.Dirname = "/usr/lib"
	objFoo.Basename = "libfoo.so"
	objFoo.Class = domain.ELFCLASS64
	objFoo.Data = domain.ELFDATA2LSB
	pkgA.AddObject(objFoo)

	pkgB := domain.NewPackage("libB", "1.0")
	objBar := domain.NewElf()
	objBar.Dirname = "/usr/lib"
	objBar.Basename = "libbar.so"
	objBar.Class = domain.ELFCLASS64
	objBar.Data = domain.ELFDATA2LSB
	objBar.Needed = []string{"libfoo.so", "libmissing.so"}
	objBar.AddFound(objFoo)
	objBar.AddMissing("libmissing.so")
	pkgB.AddObject(objBar)

	db.Packages = []*domain.Package{pkgA, pkgB}
	db.Objects = []*domain.Elf{objFoo, objBar}
	return db
}

func TestStore_RoundTrip(t *testing.T) {
	db := buildTestDB()
	store := dbstore.New()

	var buf bytes.Buffer
	require.NoError(t, store.Save(&buf, db))

	loaded, err := store.Load(&buf)
	require.NoError(t, err)

	require.Equal(t, db.Name, loaded.Name)
	require.Equal(t, db.LibraryPath, loaded.LibraryPath)
	require.Equal(t, db.BasePackages, loaded.BasePackages)
	require.Equal(t, dbstore.FormatVersion, loaded.LoadedVersion)
	require.Len(t, loaded.Packages, 2)
	require.Len(t, loaded.Objects, 2)

	var bar *domain.Elf
	for _, obj := range loaded.Objects {
		if obj.Basename == "libbar.so" {
			bar = obj
		}
	}
	require.NotNil(t, bar)
	require.True(t, bar.HasMissing("libmissing.so"))
	require.Len(t, bar.ReqFound, 1)
	for lib := range bar.ReqFound {
		require.Equal(t, "libfoo.so", lib.Basename)
	}
}
