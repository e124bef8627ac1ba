package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
)

// ParallelRelinkThreshold gates when RelinkAll partitions work across
// workers instead of running the simple serial loop: the DB must have more
// than this many packages.
const ParallelRelinkThreshold = 100

// ParallelRelinkObjectThreshold is the companion object-count gate for
// RelinkAll.
const ParallelRelinkObjectThreshold = 300

// RelinkAll discards every object's resolution and recomputes it from
// scratch against the DB's current object pool and rule stores. It is used
// after bulk mutation of the rule stores (library paths, ignore lists,
// strict-linking mode) to re-derive the graph without reloading packages.
//
// When the DB is large enough (more than one worker available, more than
// ParallelRelinkThreshold packages, at least ParallelRelinkObjectThreshold
// objects, and max_jobs != 1) the work is partitioned across workers; the
// result is bit-identical to the serial path because FindFor's tiebreak
// (DB insertion order) does not depend on which worker computes it.
func RelinkAll(ctx context.Context, db *domain.DB, telemetry ports.Telemetry) error {
	workers := workerCount(db.MaxJobs)

	var vertex ports.Vertex
	if telemetry != nil {
		vertex = telemetry.StartVertex(ctx, "relink", len(db.Packages))
	}

	useParallel := workers > 1 &&
		len(db.Packages) > ParallelRelinkThreshold &&
		len(db.Objects) >= ParallelRelinkObjectThreshold &&
		db.MaxJobs != 1

	var err error
	if useParallel {
		err = relinkParallel(ctx, db, workers, vertex)
	} else {
		err = relinkSerial(db, vertex)
	}

	if vertex != nil {
		vertex.Complete(err)
	}
	return err
}

func relinkSerial(db *domain.DB, vertex ports.Vertex) error {
	for i, pkg := range db.Packages {
		for _, obj := range pkg.Objects {
			relinkObject(db, obj, db.Objects)
		}
		if vertex != nil {
			vertex.Progress(i + 1)
		}
	}
	return nil
}

// relinkParallel partitions db.Packages into contiguous ranges, one per
// worker. Each worker computes (found, missing) for every object owned by
// its packages into thread-local maps keyed by Elf, never writing through
// an Elf itself. Once every worker has finished, a single-threaded merge
// step installs the per-Elf results into the live ReqFound/ReqMissing
// fields, which is the only point where the live graph is mutated.
func relinkParallel(ctx context.Context, db *domain.DB, workers int, vertex ports.Vertex) error {
	type partial struct {
		obj     *domain.Elf
		found   map[*domain.Elf]struct{}
		missing map[string]struct{}
	}

	var resultsMu sync.Mutex
	results := make(map[int][]partial)
	n := len(db.Packages)

	err := runPartitioned(ctx, n, workers, vertex, func(lo, hi int, progress *atomic.Int64) error {
		var local []partial
		for i := lo; i < hi; i++ {
			for _, obj := range db.Packages[i].Objects {
				found := make(map[*domain.Elf]struct{})
				missing := make(map[string]struct{})
				relinkObjectInto(db, obj, db.Objects, found, missing)
				local = append(local, partial{obj: obj, found: found, missing: missing})
			}
			progress.Add(1)
		}
		resultsMu.Lock()
		results[lo] = local
		resultsMu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}

	for _, partials := range results {
		for _, p := range partials {
			p.obj.ResetResolution()
			for lib := range p.found {
				p.obj.AddFound(lib)
			}
			for soname := range p.missing {
				p.obj.AddMissing(soname)
			}
		}
	}
	return nil
}
