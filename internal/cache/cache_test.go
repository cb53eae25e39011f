package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

func TestCache_ObserveDataVersion_FlushesOnChange(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	ctx := context.Background()

	key := []byte("spec-graph:deadbeef")
	require.NoError(t, store.Set(ctx, key, []byte("stale")))

	require.NoError(t, c.ObserveDataVersion(ctx, "v1"))
	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok, "first observation must not flush")

	require.NoError(t, c.ObserveDataVersion(ctx, "v2"))
	_, ok, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "version change must flush the whole store")
}

func TestCache_ObserveDataVersion_NoFlushOnSameVersion(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	ctx := context.Background()

	key := []byte("spec-graph:deadbeef")
	require.NoError(t, c.ObserveDataVersion(ctx, "v1"))
	require.NoError(t, store.Set(ctx, key, []byte("fresh")))
	require.NoError(t, c.ObserveDataVersion(ctx, "v1"))

	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCache_GetOrComputeGraph_ComputesOnceOnRepeatedHit(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	ctx := context.Background()
	key := []byte("spec-graph:abc123")

	calls := 0
	compute := func(ctx context.Context) (*itctypes.GraphResult, error) {
		calls++
		return sampleGraphResult(), nil
	}

	first, err := c.GetOrComputeGraph(ctx, key, compute)
	require.NoError(t, err)
	second, err := c.GetOrComputeGraph(ctx, key, compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.PeakFinalSN, second.PeakFinalSN)
}

func TestCache_GetOrComputeExposurePlan_ComputesOnceOnRepeatedHit(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	ctx := context.Background()
	key := []byte("spec-time:abc123")

	calls := 0
	compute := func(ctx context.Context) (*itctypes.ExposurePlan, error) {
		calls++
		return &itctypes.ExposurePlan{
			ExposureTime:  itctypes.DurationFromSeconds(1),
			ExposureCount: 10,
			TotalSN:       10,
			SingleSN:      3.16,
		}, nil
	}

	_, err := c.GetOrComputeExposurePlan(ctx, key, compute)
	require.NoError(t, err)
	_, err = c.GetOrComputeExposurePlan(ctx, key, compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}
