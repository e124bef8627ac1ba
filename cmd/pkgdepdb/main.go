// Package main is the entry point for the pkgdepdb CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Acidburn0zzz/pkgdepdb/cmd/pkgdepdb/commands"
	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/dbstore"
	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/elfscan"
	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/logger"
	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/pkgarchive"
	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/vercmp"
	"github.com/Acidburn0zzz/pkgdepdb/internal/app"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
)

func main() {
	if err := run(); err != nil {
		// zerr prints a pretty error report with stack trace and metadata when using %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	log := logger.New()
	store := dbstore.New()
	loader := pkgarchive.New(elfscan.New())
	cmp := vercmp.New()

	db := domain.NewDB("pkgdepdb")

	application := app.New(store, loader, cmp, log, ports.NoOpTelemetry{}, db)

	cli := commands.New(application)
	return cli.Execute(ctx)
}
