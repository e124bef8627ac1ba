package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
)

// ParallelReverseThreshold gates when the reverse-resolution pass run by
// InstallPackage and DeletePackage partitions work across workers instead
// of the plain nested loop: len(existing) * len(changed) must exceed this.
// It reuses runPartitioned, the same worker-pool primitive RelinkAll uses.
const ParallelReverseThreshold = ParallelRelinkThreshold * ParallelRelinkObjectThreshold

// installFix is the set of previously-missing sonames a seeker picks up
// from a batch of newly installed objects.
type installFix struct {
	found []*domain.Elf
}

func computeInstallFix(db *domain.DB, seeker *domain.Elf, newObjects []*domain.Elf) installFix {
	extra := db.PackageLibraryPath[seeker.Owner.Name]
	var fix installFix
	for _, newobj := range newObjects {
		if !seeker.HasMissing(newobj.Basename) {
			continue
		}
		if !canUseAndFinds(db, seeker, newobj, extra) {
			continue
		}
		fix.found = append(fix.found, newobj)
	}
	return fix
}

func applyInstallFix(seeker *domain.Elf, fix installFix) {
	for _, newobj := range fix.found {
		seeker.RemoveMissing(newobj.Basename)
		seeker.AddFound(newobj)
	}
}

// reverseFixInstall lets every seeker in seekers pick up a library it was
// previously missing from newObjects, parallelising across workers once
// the (seeker, newObjects) product crosses ParallelReverseThreshold.
func reverseFixInstall(ctx context.Context, db *domain.DB, seekers, newObjects []*domain.Elf, telemetry ports.Telemetry) {
	if len(seekers) == 0 || len(newObjects) == 0 {
		return
	}

	workers := workerCount(db.MaxJobs)
	if workers <= 1 || db.MaxJobs == 1 || len(seekers)*len(newObjects) <= ParallelReverseThreshold {
		for _, seeker := range seekers {
			applyInstallFix(seeker, computeInstallFix(db, seeker, newObjects))
		}
		return
	}

	var vertex ports.Vertex
	if telemetry != nil {
		vertex = telemetry.StartVertex(ctx, "install-reverse", len(seekers))
	}

	var mu sync.Mutex
	fixes := make(map[*domain.Elf]installFix, len(seekers))

	err := runPartitioned(ctx, len(seekers), workers, vertex, func(lo, hi int, progress *atomic.Int64) error {
		local := make(map[*domain.Elf]installFix)
		for i := lo; i < hi; i++ {
			seeker := seekers[i]
			if fix := computeInstallFix(db, seeker, newObjects); len(fix.found) > 0 {
				local[seeker] = fix
			}
			progress.Add(1)
		}
		mu.Lock()
		for seeker, fix := range local {
			fixes[seeker] = fix
		}
		mu.Unlock()
		return nil
	})
	if vertex != nil {
		vertex.Complete(err)
	}

	for seeker, fix := range fixes {
		applyInstallFix(seeker, fix)
	}
}

// deleteFix is the re-resolution outcome for a seeker that had found one or
// more of a just-removed package's objects.
type deleteFix struct {
	removed []*domain.Elf
	added   []*domain.Elf
	missing []string
}

func computeDeleteFix(db *domain.DB, seeker *domain.Elf, removedObjects []*domain.Elf) deleteFix {
	extra := db.PackageLibraryPath[seeker.Owner.Name]
	var fix deleteFix
	for _, e := range removedObjects {
		if !seeker.HasFound(e) {
			continue
		}
		fix.removed = append(fix.removed, e)
		if lib := findReplacement(db, seeker, e.Basename, extra); lib != nil {
			fix.added = append(fix.added, lib)
		} else if !db.IsAssumedFound(e.Basename) {
			fix.missing = append(fix.missing, e.Basename)
		}
	}
	return fix
}

func applyDeleteFix(seeker *domain.Elf, fix deleteFix) {
	for _, e := range fix.removed {
		seeker.RemoveFound(e)
	}
	for _, lib := range fix.added {
		seeker.AddFound(lib)
	}
	for _, soname := range fix.missing {
		seeker.AddMissing(soname)
	}
}

// reverseFixDelete re-resolves every seeker in seekers that had found one
// of removedObjects, parallelising across workers once the (seeker,
// removedObjects) product crosses ParallelReverseThreshold.
func reverseFixDelete(ctx context.Context, db *domain.DB, seekers, removedObjects []*domain.Elf, telemetry ports.Telemetry) {
	if len(seekers) == 0 || len(removedObjects) == 0 {
		return
	}

	workers := workerCount(db.MaxJobs)
	if workers <= 1 || db.MaxJobs == 1 || len(seekers)*len(removedObjects) <= ParallelReverseThreshold {
		for _, seeker := range seekers {
			applyDeleteFix(seeker, computeDeleteFix(db, seeker, removedObjects))
		}
		return
	}

	var vertex ports.Vertex
	if telemetry != nil {
		vertex = telemetry.StartVertex(ctx, "remove-reverse", len(seekers))
	}

	var mu sync.Mutex
	fixes := make(map[*domain.Elf]deleteFix, len(seekers))

	err := runPartitioned(ctx, len(seekers), workers, vertex, func(lo, hi int, progress *atomic.Int64) error {
		local := make(map[*domain.Elf]deleteFix)
		for i := lo; i < hi; i++ {
			seeker := seekers[i]
			if fix := computeDeleteFix(db, seeker, removedObjects); len(fix.removed) > 0 {
				local[seeker] = fix
			}
			progress.Add(1)
		}
		mu.Lock()
		for seeker, fix := range local {
			fixes[seeker] = fix
		}
		mu.Unlock()
		return nil
	})
	if vertex != nil {
		vertex.Complete(err)
	}

	for seeker, fix := range fixes {
		applyDeleteFix(seeker, fix)
	}
}
