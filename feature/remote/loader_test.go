package remote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"achievement-manager/core/racache"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, gameID uint32) (*Snapshot, error) {
	args := m.Called(ctx, gameID)
	if snap, ok := args.Get(0).(*Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

var snapshotFile = "/emu/" + racache.SnapshotPath(1)

func fresh(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := Decode([]byte(multiSetJSON))
	require.NoError(t, err)
	return snap
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("UsesStoredSnapshot", func(t *testing.T) {
		fs, store := newTestStore(t)
		require.NoError(t, afero.WriteFile(fs, snapshotFile, []byte(multiSetJSON), 0o644))
		fetcher := new(mockFetcher)

		set, err := NewLoader(fetcher, store, zap.NewNop()).Load(ctx, 1, LoadOptions{})
		require.NoError(t, err)
		assert.Len(t, set.Achievements(), 1)
		fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("FetchesWhenMissing", func(t *testing.T) {
		_, store := newTestStore(t)
		fetcher := new(mockFetcher)
		fetcher.On("Fetch", ctx, uint32(1)).Return(fresh(t), nil).Once()

		set, err := NewLoader(fetcher, store, zap.NewNop()).Load(ctx, 1, LoadOptions{})
		require.NoError(t, err)
		assert.Len(t, set.Achievements(), 1)
		fetcher.AssertExpectations(t)
	})

	t.Run("RefetchesBrokenSnapshotOnce", func(t *testing.T) {
		fs, store := newTestStore(t)
		require.NoError(t, afero.WriteFile(fs, snapshotFile, []byte(`{"Sets": [{"Type": "bonus"}]}`), 0o644))
		fetcher := new(mockFetcher)
		fetcher.On("Fetch", ctx, uint32(1)).Return(fresh(t), nil).Once()

		_, err := NewLoader(fetcher, store, zap.NewNop()).Load(ctx, 1, LoadOptions{})
		require.NoError(t, err)
		fetcher.AssertNumberOfCalls(t, "Fetch", 1)
	})

	t.Run("BrokenAfterRefetch", func(t *testing.T) {
		fs, store := newTestStore(t)
		require.NoError(t, afero.WriteFile(fs, snapshotFile, []byte(`not json`), 0o644))
		fetcher := new(mockFetcher)
		fetcher.On("Fetch", ctx, uint32(1)).Return(&Snapshot{Success: true}, nil).Once()

		_, err := NewLoader(fetcher, store, zap.NewNop()).Load(ctx, 1, LoadOptions{})
		assert.EqualError(t, err, "remote data has no core achievement set")
		fetcher.AssertNumberOfCalls(t, "Fetch", 1)
	})

	t.Run("RefetchIgnoresStoredSnapshot", func(t *testing.T) {
		fs, store := newTestStore(t)
		require.NoError(t, afero.WriteFile(fs, snapshotFile, []byte(multiSetJSON), 0o644))
		fetcher := new(mockFetcher)
		fetcher.On("Fetch", ctx, uint32(1)).Return(fresh(t), nil).Once()

		_, err := NewLoader(fetcher, store, zap.NewNop()).Load(ctx, 1, LoadOptions{Refetch: true})
		require.NoError(t, err)
		fetcher.AssertExpectations(t)
	})

	t.Run("FetchError", func(t *testing.T) {
		_, store := newTestStore(t)
		fetcher := new(mockFetcher)
		fetcher.On("Fetch", ctx, uint32(1)).Return(nil, errors.New("failed to fetch remote data: HTTP 503"))

		_, err := NewLoader(fetcher, store, zap.NewNop()).Load(ctx, 1, LoadOptions{})
		assert.EqualError(t, err, "failed to fetch remote data: HTTP 503")
	})
}

func TestLoader_Cache(t *testing.T) {
	ctx := context.Background()
	_, store := newTestStore(t)
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", ctx, uint32(1)).Return(fresh(t), nil)

	loader := NewLoader(fetcher, store, zap.NewNop()).WithCache(8, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := loader.Load(ctx, 1, LoadOptions{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	first, err := loader.Load(ctx, 1, LoadOptions{})
	require.NoError(t, err)
	second, err := loader.Load(ctx, 1, LoadOptions{})
	require.NoError(t, err)
	assert.Same(t, first, second)

	// The mock does not write the snapshot to the store, so every
	// cache miss fetches.
	calls := len(fetcher.Calls)
	_, err = loader.Load(ctx, 1, LoadOptions{Refetch: true})
	require.NoError(t, err)
	assert.Len(t, fetcher.Calls, calls+1)
}

// blockingFetcher holds Fetch until release is closed and fails when its
// context was cancelled meanwhile.
type blockingFetcher struct {
	snap    *Snapshot
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (f *blockingFetcher) Fetch(ctx context.Context, _ uint32) (*Snapshot, error) {
	f.once.Do(func() { close(f.started) })
	<-f.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.snap, nil
}

func TestLoader_SharedLoadSurvivesCancelledCaller(t *testing.T) {
	_, store := newTestStore(t)
	fetcher := &blockingFetcher{snap: fresh(t), started: make(chan struct{}), release: make(chan struct{})}
	loader := NewLoader(fetcher, store, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := loader.Load(ctx, 1, LoadOptions{})
		first <- err
	}()
	<-fetcher.started

	second := make(chan error, 1)
	go func() {
		_, err := loader.Load(context.Background(), 1, LoadOptions{})
		second <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	close(fetcher.release)

	assert.NoError(t, <-second)
	<-first
}
