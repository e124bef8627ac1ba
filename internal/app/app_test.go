package app_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Acidburn0zzz/pkgdepdb/internal/app"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
)

// fakeStore round-trips a *domain.DB through an in-memory buffer without
// any real serialisation, enough to exercise App.LoadDB/SaveDB.
type fakeStore struct {
	saved *domain.DB
}

func (s *fakeStore) Save(_ io.Writer, db *domain.DB) error {
	s.saved = db
	return nil
}

func (s *fakeStore) Load(_ io.Reader) (*domain.DB, error) {
	return s.saved, nil
}

// fakeLoader returns a single canned package regardless of the archive path.
type fakeLoader struct {
	pkg *domain.Package
}

func (l *fakeLoader) Load(string) (*domain.Package, error) {
	return l.pkg, nil
}

func newTestPackage(name string) *domain.Package {
	pkg := domain.NewPackage(name, "1.0")
	obj := domain.NewElf()
	obj.Dirname = "/usr/lib"
	obj.Basename = name + ".so"
	obj.Class = domain.ELFCLASS64
	obj.Data = domain.ELFDATA2LSB
	pkg.AddObject(obj)
	return pkg
}

func TestApp_InstallAndRemove(t *testing.T) {
	db := domain.NewDB("test")
	loader := &fakeLoader{pkg: newTestPackage("libfoo")}
	a := app.New(&fakeStore{}, loader, nil, nil, ports.NoOpTelemetry{}, db)

	ctx := context.Background()
	require.NoError(t, a.InstallArchive(ctx, "libfoo-1.0-1-x86_64.pkg.tar"))
	assert.NotNil(t, a.DB.FindPackage("libfoo"))
	assert.Len(t, a.DB.Objects, 1)

	removed := a.RemovePackage(ctx, "libfoo")
	assert.True(t, removed)
	assert.Nil(t, a.DB.FindPackage("libfoo"))
	assert.Empty(t, a.DB.Objects)

	assert.False(t, a.RemovePackage(ctx, "libfoo"))
}

func TestApp_SaveAndLoadDB(t *testing.T) {
	db := domain.NewDB("test")
	store := &fakeStore{}
	a := app.New(store, &fakeLoader{}, nil, nil, ports.NoOpTelemetry{}, db)

	var buf bytes.Buffer
	_ = buf // fakeStore ignores the io.Writer/io.Reader payload entirely

	path := t.TempDir() + "/db.json"
	require.NoError(t, a.SaveDB(path))
	require.NoError(t, a.LoadDB(path))
	assert.Same(t, db, a.DB)
}

func TestApp_RelinkAndCheckIntegrity(t *testing.T) {
	db := domain.NewDB("test")
	a := app.New(&fakeStore{}, &fakeLoader{}, nil, nil, ports.NoOpTelemetry{}, db)

	require.NoError(t, a.Relink(context.Background()))
	findings := a.CheckIntegrity(context.Background(), nil)
	assert.Empty(t, findings)
}
