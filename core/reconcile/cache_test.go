package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"merch-manager/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(calls *int32, entries []catalog.Entry) CatalogLoader {
	return func(ctx context.Context) ([]catalog.Entry, error) {
		atomic.AddInt32(calls, 1)
		return entries, nil
	}
}

func TestCatalogCache_Get(t *testing.T) {
	t.Run("CachesWithinTTL", func(t *testing.T) {
		var calls int32
		cache := NewCatalogCache(time.Minute, countingLoader(&calls, sampleCatalog()))

		for i := 0; i < 3; i++ {
			entries, err := cache.Get(context.Background())
			require.NoError(t, err)
			assert.Len(t, entries, 3)
		}
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("ZeroTTLDisablesCaching", func(t *testing.T) {
		var calls int32
		cache := NewCatalogCache(0, countingLoader(&calls, sampleCatalog()))

		_, _ = cache.Get(context.Background())
		_, _ = cache.Get(context.Background())
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("Invalidate", func(t *testing.T) {
		var calls int32
		cache := NewCatalogCache(time.Minute, countingLoader(&calls, sampleCatalog()))

		_, _ = cache.Get(context.Background())
		cache.Invalidate()
		_, _ = cache.Get(context.Background())
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("LoaderError", func(t *testing.T) {
		cache := NewCatalogCache(time.Minute, func(ctx context.Context) ([]catalog.Entry, error) {
			return nil, errors.New("db down")
		})

		_, err := cache.Get(context.Background())
		assert.EqualError(t, err, "db down")
	})

	t.Run("ConcurrentMissesShareLoad", func(t *testing.T) {
		var calls int32
		release := make(chan struct{})
		cache := NewCatalogCache(time.Minute, func(ctx context.Context) ([]catalog.Entry, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return sampleCatalog(), nil
		})

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := cache.Get(context.Background())
				assert.NoError(t, err)
			}()
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestCatalogCache_InvalidateDuringLoad(t *testing.T) {
	var version int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var blocked int32 = 1

	cache := NewCatalogCache(time.Minute, func(ctx context.Context) ([]catalog.Entry, error) {
		name := "A"
		if atomic.LoadInt32(&version) > 0 {
			name = "B"
		}
		if atomic.CompareAndSwapInt32(&blocked, 1, 0) {
			started <- struct{}{}
			<-release
		}
		return []catalog.Entry{{Product: catalog.Product{ProductID: "p-1", Name: name}}}, nil
	})

	done := make(chan []catalog.Entry)
	go func() {
		entries, err := cache.Get(context.Background())
		assert.NoError(t, err)
		done <- entries
	}()

	<-started
	atomic.StoreInt32(&version, 1)
	cache.Invalidate()
	close(release)

	stale := <-done
	assert.Equal(t, "A", stale[0].Product.Name)

	entries, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B", entries[0].Product.Name)
}

func TestCatalogCache_Compute(t *testing.T) {
	var calls int32
	cache := NewCatalogCache(time.Minute, countingLoader(&calls, sampleCatalog()))

	needs, err := cache.Compute(context.Background(), []catalog.Order{
		order(catalog.OrderItem{Product: "CCS Lanyard", Quantity: 4}),
	})
	require.NoError(t, err)

	pc, ok := needs.Get("CCS Lanyard")
	require.True(t, ok)
	assert.Equal(t, 10, pc.Available)
}
