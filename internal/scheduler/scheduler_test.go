package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_SerializesJobs(t *testing.T) {
	s := New(4, nil)
	defer s.Close()

	var inFlight int32
	var maxObserved int32
	const n = 20

	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := s.Submit(context.Background(), func(ctx context.Context) (any, error) {
				cur := atomic.AddInt32(&inFlight, 1)
				for {
					old := atomic.LoadInt32(&maxObserved)
					if cur <= old || atomic.CompareAndSwapInt32(&maxObserved, old, cur) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return nil, nil
			})
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxObserved))
}

func TestScheduler_ReturnsJobResult(t *testing.T) {
	s := New(1, nil)
	defer s.Close()

	v, err := s.Submit(context.Background(), func(ctx context.Context) (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestScheduler_CancellationDoesNotBlockSubmit(t *testing.T) {
	s := New(1, nil)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Submit(ctx, func(ctx context.Context) (any, error) {
		return nil, nil
	})
	assert.Error(t, err)
}

func TestScheduler_CloseReleasesGuardAfterInFlightJobCompletes(t *testing.T) {
	s := New(1, nil)
	done := make(chan struct{})
	go func() {
		_, _ = s.Submit(context.Background(), func(ctx context.Context) (any, error) {
			time.Sleep(10 * time.Millisecond)
			return nil, nil
		})
		close(done)
	}()
	<-done
	s.Close()
}
