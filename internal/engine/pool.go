package engine

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// workerCount returns the number of workers to use given maxJobs: 0 means
// "use all CPUs", 1 forces the serial path (a single worker), and any other
// value is capped at the CPU count.
func workerCount(maxJobs int) int {
	cpus := runtime.NumCPU()
	if maxJobs == 0 {
		return cpus
	}
	if maxJobs == 1 {
		return 1
	}
	if maxJobs < cpus {
		return maxJobs
	}
	return cpus
}

// partitionRange splits [0, n) into up to workers contiguous ranges,
// skipping empty ranges when n < workers.
func partitionRange(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return nil
	}
	ranges := make([][2]int, 0, workers)
	base := n / workers
	rem := n % workers
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		ranges = append(ranges, [2]int{start, start + size})
		start += size
	}
	return ranges
}

// runPartitioned runs work over the contiguous-range partitioning of [0, n)
// across workers goroutines, reporting progress on vertex at roughly 10Hz via
// a shared atomic counter. work is called once per partition with the
// [lo, hi) index range it owns and a progress counter it must Add(1) to
// after finishing each item; it must not touch any other partition's state.
func runPartitioned(ctx context.Context, n, workers int, vertex ports.Vertex, work func(lo, hi int, progress *atomic.Int64) error) error {
	ranges := partitionRange(n, workers)
	if len(ranges) == 0 {
		return nil
	}

	var progress atomic.Int64
	done := make(chan struct{})
	var wg sync.WaitGroup
	if vertex != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					vertex.Progress(int(progress.Load()))
				case <-done:
					vertex.Progress(int(progress.Load()))
					return
				}
			}
		}()
	}

	g, _ := errgroup.WithContext(ctx)
	for _, r := range ranges {
		lo, hi := r[0], r[1]
		g.Go(func() error {
			return work(lo, hi, &progress)
		})
	}
	err := g.Wait()
	close(done)
	wg.Wait()
	return err
}
