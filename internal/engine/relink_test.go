package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"github.com/Acidburn0zzz/pkgdepdb/internal/engine"
)

func TestRelinkAll_Serial(t *testing.T) {
	db := domain.NewDB("test")
	db.MaxJobs = 1

	provider := domain.NewPackage("libA", "1.0")
	provider.AddObject(newObj("libA.so"))
	engine.InstallPackage(context.Background(), db, provider, nil)

	consumerPkg := domain.NewPackage("libB", "1.0")
	consumer := newObj("libB.so")
	consumer.Needed = []string{"libA.so"}
	consumerPkg.AddObject(consumer)
	engine.InstallPackage(context.Background(), db, consumerPkg, nil)

	consumer.ResetResolution()
	require.Empty(t, consumer.ReqFound)

	require.NoError(t, engine.RelinkAll(context.Background(), db, nil))
	assert.True(t, consumer.HasFound(db.Objects[0]))
}

// buildLargeDB builds a DB large enough to cross RelinkAll's parallel
// threshold: each package i>0 depends on package 0's single library.
func buildLargeDB(n int) (*domain.DB, []*domain.Elf) {
	db := domain.NewDB("test")

	provider := domain.NewPackage("lib0", "1.0")
	providerObj := newObj("lib0.so")
	provider.AddObject(providerObj)
	engine.InstallPackage(context.Background(), db, provider, nil)

	consumers := make([]*domain.Elf, 0, n)
	for i := 1; i < n; i++ {
		pkg := domain.NewPackage(fmt.Sprintf("lib%d", i), "1.0")
		obj := newObj(fmt.Sprintf("lib%d.so", i))
		obj.Needed = []string{"lib0.so"}
		pkg.AddObject(obj)
		engine.InstallPackage(context.Background(), db, pkg, nil)
		consumers = append(consumers, obj)
	}
	return db, consumers
}

func TestRelinkAll_SerialAndParallelAgree(t *testing.T) {
	const n = engine.ParallelRelinkThreshold + engine.ParallelRelinkObjectThreshold

	serialDB, serialConsumers := buildLargeDB(n)
	serialDB.MaxJobs = 1
	require.NoError(t, engine.RelinkAll(context.Background(), serialDB, nil))

	parallelDB, parallelConsumers := buildLargeDB(n)
	parallelDB.MaxJobs = 0
	require.NoError(t, engine.RelinkAll(context.Background(), parallelDB, nil))

	require.Len(t, parallelConsumers, len(serialConsumers))
	for i := range serialConsumers {
		assert.Equal(t, len(serialConsumers[i].ReqFound), len(parallelConsumers[i].ReqFound))
		assert.Equal(t, serialConsumers[i].ReqMissing, parallelConsumers[i].ReqMissing)
	}
}
