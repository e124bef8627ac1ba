package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/engine"
)

func TestListPackages(t *testing.T) {
	db := domain.NewDB("test")
	a := domain.NewPackage("a", "1.0")
	a.Groups["base"] = struct{}{}
	b := domain.NewPackage("b", "1.0")
	engine.InstallPackage(context.Background(), db, a, nil)
	engine.InstallPackage(context.Background(), db, b, nil)

	assert.Len(t, engine.ListPackages(db, ""), 2)
	assert.Equal(t, []*domain.Package{a}, engine.ListPackages(db, "base"))
}

func TestListObjectsAndBroken(t *testing.T) {
	db := domain.NewDB("test")
	pkg := domain.NewPackage("a", "1.0")
	obj := newObj("liba.so")
	obj.Needed = []string{"libmissing.so"}
	pkg.AddObject(obj)
	engine.InstallPackage(context.Background(), db, pkg, nil)

	assert.Len(t, engine.ListObjects(db, ""), 1)
	assert.Len(t, engine.ListObjects(db, "a"), 1)
	assert.Empty(t, engine.ListObjects(db, "other"))

	broken := engine.ListBrokenObjects(db)
	assert.Len(t, broken, 1)
	assert.Same(t, obj, broken[0])
}

func TestListFiles(t *testing.T) {
	db := domain.NewDB("test")
	pkg := domain.NewPackage("a", "1.0")
	pkg.FileList = []string{"/usr/lib/liba.so", "/usr/share/doc/a"}
	engine.InstallPackage(context.Background(), db, pkg, nil)

	files := engine.ListFiles(db)
	assert.Len(t, files, 2)
	assert.Equal(t, "a", files[0].Package)
}

func TestFindOwner(t *testing.T) {
	db := domain.NewDB("test")
	pkg := domain.NewPackage("a", "1.0")
	pkg.AddObject(newObj("liba.so"))
	engine.InstallPackage(context.Background(), db, pkg, nil)

	owner := engine.FindOwner(db, "/usr/lib", "liba.so")
	assert.Same(t, pkg, owner)
	assert.Nil(t, engine.FindOwner(db, "/usr/lib", "missing.so"))
}

func TestFindObjectsByBasename(t *testing.T) {
	db := domain.NewDB("test")
	pkg := domain.NewPackage("a", "1.0")
	pkg.AddObject(newObj("liba.so"))
	engine.InstallPackage(context.Background(), db, pkg, nil)

	assert.Len(t, engine.FindObjectsByBasename(db, "liba.so"), 1)
	assert.Empty(t, engine.FindObjectsByBasename(db, "missing.so"))
}
