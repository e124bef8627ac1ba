// Package app wires the core engine and resolver packages to the
// persistence, archive-loading and telemetry ports, and exposes the
// operations the CLI commands call.
package app

import (
	"context"
	"os"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
	"github.com/Acidburn0zzz/pkgdepdb/internal/engine"
	"go.trai.ch/zerr"
)

// App is the explicit, hand-wired application layer: every dependency is
// an interface from internal/core/ports, passed in by the caller (the CLI
// entrypoint) rather than resolved through a DI framework.
type App struct {
	Store      ports.Store
	Loader     ports.PackageLoader
	VersionCmp ports.VersionComparer // may be nil: integrity checks degrade to name-only matching
	Logger     ports.Logger
	Telemetry  ports.Telemetry

	DB *domain.DB
}

// New returns an App ready to operate on db. db may be freshly created or
// loaded from disk via LoadDB.
func New(store ports.Store, loader ports.PackageLoader, cmp ports.VersionComparer, log ports.Logger, tel ports.Telemetry, db *domain.DB) *App {
	return &App{
		Store:      store,
		Loader:     loader,
		VersionCmp: cmp,
		Logger:     log,
		Telemetry:  tel,
		DB:         db,
	}
}

// LoadDB replaces a.DB with the database persisted at path.
func (a *App) LoadDB(path string) error {
	//nolint:gosec // path is operator-supplied, not user web input
	f, err := os.Open(path)
	if err != nil {
		return zerr.Wrap(err, "failed to open database")
	}
	defer f.Close()

	db, err := a.Store.Load(f)
	if err != nil {
		return zerr.Wrap(err, "failed to load database")
	}
	a.DB = db
	return nil
}

// SaveDB persists a.DB to path.
func (a *App) SaveDB(path string) error {
	//nolint:gosec // path is operator-supplied, not user web input
	f, err := os.Create(path)
	if err != nil {
		return zerr.Wrap(err, "failed to create database file")
	}
	defer f.Close()

	if err := a.Store.Save(f, a.DB); err != nil {
		return zerr.Wrap(err, "failed to save database")
	}
	return nil
}

// InstallArchive loads the package archive at archivePath and installs it
// into a.DB, replacing any existing package of the same name.
func (a *App) InstallArchive(ctx context.Context, archivePath string) error {
	pkg, err := a.Loader.Load(archivePath)
	if err != nil {
		return zerr.Wrap(err, "failed to load package archive")
	}
	engine.InstallPackage(ctx, a.DB, pkg, a.Telemetry)
	if a.Logger != nil {
		a.Logger.Info("installed package", "name", pkg.Name, "version", pkg.Version, "objects", len(pkg.Objects))
	}
	return nil
}

// RemovePackage removes the named package from a.DB. It reports whether
// the package was present.
func (a *App) RemovePackage(ctx context.Context, name string) bool {
	existed := a.DB.FindPackage(name) != nil
	engine.DeletePackage(ctx, a.DB, name, a.Telemetry)
	if existed && a.Logger != nil {
		a.Logger.Info("removed package", "name", name)
	}
	return existed
}

// Relink runs a full relink of a.DB, reporting progress through
// a.Telemetry if set.
func (a *App) Relink(ctx context.Context) error {
	return engine.RelinkAll(ctx, a.DB, a.Telemetry)
}

// CheckIntegrity runs the integrity checker against targets (or every
// installed package when targets is nil).
func (a *App) CheckIntegrity(ctx context.Context, targets []string) []engine.Finding {
	return engine.CheckIntegrity(ctx, a.DB, targets, a.VersionCmp, a.Telemetry)
}
