package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/vercmp"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/engine"
)

func TestCheckIntegrity_MissingDepend(t *testing.T) {
	db := domain.NewDB("test")
	pkg := domain.NewPackage("a", "1.0")
	pkg.Depends = []string{"libb.so"}
	db.Packages = append(db.Packages, pkg)

	findings := engine.CheckIntegrity(context.Background(), db, nil, nil, nil)
	assert.Len(t, findings, 1)
	assert.Equal(t, engine.MissingDepend, findings[0].Kind)
	assert.Equal(t, "a", findings[0].Package)
}

func TestCheckIntegrity_ResolvesDependency(t *testing.T) {
	db := domain.NewDB("test")
	b := domain.NewPackage("b", "1.0")
	a := domain.NewPackage("a", "1.0")
	a.Depends = []string{"b"}
	db.Packages = append(db.Packages, b, a)

	findings := engine.CheckIntegrity(context.Background(), db, []string{"a"}, nil, nil)
	assert.Empty(t, findings)
}

func TestCheckIntegrity_BrokenObject(t *testing.T) {
	db := domain.NewDB("test")
	pkg := domain.NewPackage("a", "1.0")
	obj := newObj("liba.so")
	obj.Needed = []string{"libmissing.so"}
	pkg.AddObject(obj)
	db.Packages = append(db.Packages, pkg)

	findings := engine.CheckIntegrity(context.Background(), db, nil, nil, nil)
	var kinds []engine.FindingKind
	for _, f := range findings {
		kinds = append(kinds, f.Kind)
	}
	assert.Contains(t, kinds, engine.BrokenObject)
}

func TestCheckIntegrity_Conflict(t *testing.T) {
	db := domain.NewDB("test")
	a := domain.NewPackage("a", "1.0")
	a.Conflicts = []string{"b"}
	b := domain.NewPackage("b", "1.0")
	b.Conflicts = []string{"a"}
	a.Depends = []string{"b"}
	db.Packages = append(db.Packages, a, b)
	db.BasePackages = []string{"b"}

	findings := engine.CheckIntegrity(context.Background(), db, []string{"a"}, vercmp.New(), nil)
	var found bool
	for _, f := range findings {
		if f.Kind == engine.Conflict {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckIntegrity_FileConflict(t *testing.T) {
	db := domain.NewDB("test")
	a := domain.NewPackage("a", "1.0")
	a.FileList = []string{"/usr/bin/tool"}
	b := domain.NewPackage("b", "1.0")
	b.FileList = []string{"/usr/bin/tool"}
	db.Packages = append(db.Packages, a, b)

	findings := engine.CheckIntegrity(context.Background(), db, nil, nil, nil)
	var found bool
	for _, f := range findings {
		if f.Kind == engine.FileConflict {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckIntegrity_ExemptsDeclaredConflicts(t *testing.T) {
	db := domain.NewDB("test")
	a := domain.NewPackage("a", "1.0")
	a.FileList = []string{"/usr/bin/tool"}
	a.Conflicts = []string{"b"}
	b := domain.NewPackage("b", "1.0")
	b.FileList = []string{"/usr/bin/tool"}
	b.Conflicts = []string{"a"}
	db.Packages = append(db.Packages, a, b)

	findings := engine.CheckIntegrity(context.Background(), db, nil, nil, nil)
	for _, f := range findings {
		assert.NotEqual(t, engine.FileConflict, f.Kind)
	}
}

func TestCheckIntegrity_VersionedProvideSatisfiesInequalityDependency(t *testing.T) {
	db := domain.NewDB("test")
	provider := domain.NewPackage("provider", "1.0")
	provider.Provides = []string{"virtual>=5"}
	consumer := domain.NewPackage("consumer", "1.0")
	consumer.Depends = []string{"virtual>=3"}
	db.Packages = append(db.Packages, provider, consumer)

	findings := engine.CheckIntegrity(context.Background(), db, []string{"consumer"}, vercmp.New(), nil)
	for _, f := range findings {
		assert.NotEqual(t, engine.MissingDepend, f.Kind)
	}
}

func TestCheckIntegrity_VersionedProvideRejectsUnsatisfiedInequality(t *testing.T) {
	db := domain.NewDB("test")
	provider := domain.NewPackage("provider", "3")
	provider.Provides = []string{"virtual<3"}
	consumer := domain.NewPackage("consumer", "1.0")
	consumer.Depends = []string{"virtual!=3"}
	db.Packages = append(db.Packages, provider, consumer)

	findings := engine.CheckIntegrity(context.Background(), db, []string{"consumer"}, vercmp.New(), nil)
	var found bool
	for _, f := range findings {
		if f.Kind == engine.MissingDepend && f.Detail == "virtual!=3" {
			found = true
		}
	}
	assert.True(t, found, "virtual<3 does not guarantee != 3, dependency should be reported missing")
}

func TestFindingKind_String(t *testing.T) {
	assert.Equal(t, "missing-depend", engine.MissingDepend.String())
	assert.Equal(t, "broken-object", engine.BrokenObject.String())
}
