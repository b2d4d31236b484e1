package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"achievement-manager/core/asset"
	"achievement-manager/core/racache"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RefetchHint is shown to the user when remote data cannot be used.
const RefetchHint = "remote data may be outdated or broken, run the command again with --refetch"

// LoadOptions controls a single Load call.
type LoadOptions struct {
	ConvertOptions
	// Refetch ignores the snapshot stored in RACache.
	Refetch bool
}

// Loader turns the remote data of a game into an asset collection. It prefers
// the snapshot stored in RACache and fetches a fresh one when it is missing,
// requested, or cannot be decoded or converted. A fresh snapshot is fetched
// at most once per load.
type Loader struct {
	fetcher Fetcher
	store   racache.Store
	logger  *zap.Logger

	group singleflight.Group
	cache *expirable.LRU[string, *asset.Set]
}

// NewLoader creates a loader without an in-memory cache.
func NewLoader(fetcher Fetcher, store racache.Store, logger *zap.Logger) *Loader {
	return &Loader{fetcher: fetcher, store: store, logger: logger}
}

// WithCache keeps up to size converted sets in memory for ttl.
// Refetching loads always bypass and refresh the cache.
func (l *Loader) WithCache(size int, ttl time.Duration) *Loader {
	l.cache = expirable.NewLRU[string, *asset.Set](size, nil, ttl)
	return l
}

func cacheKey(gameID uint32, opts ConvertOptions) string {
	return fmt.Sprintf("%d/%d/%t", gameID, opts.SetID, opts.IncludeUnofficial)
}

// Load returns the remote set of gameID. Concurrent loads of the same set share
// one result. The returned set must not be modified.
func (l *Loader) Load(ctx context.Context, gameID uint32, opts LoadOptions) (*asset.Set, error) {
	key := cacheKey(gameID, opts.ConvertOptions)
	if l.cache != nil && !opts.Refetch {
		if set, ok := l.cache.Get(key); ok {
			return set, nil
		}
	}

	flight := key
	if opts.Refetch {
		flight += "/refetch"
	}
	// The flight is shared, so one caller giving up must not fail the others.
	shared := context.WithoutCancel(ctx)
	v, err, _ := l.group.Do(flight, func() (any, error) {
		set, err := l.load(shared, gameID, opts)
		if err != nil {
			return nil, err
		}
		if l.cache != nil {
			l.cache.Add(key, set)
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*asset.Set), nil
}

func (l *Loader) load(ctx context.Context, gameID uint32, opts LoadOptions) (*asset.Set, error) {
	if !opts.Refetch {
		snap, err := l.stored(ctx, gameID)
		if err != nil && !errors.Is(err, racache.ErrNotExist) {
			l.logger.Warn("Stored remote data is broken, refetching", zap.Uint32("game_id", gameID), zap.Error(err))
		}
		if err == nil {
			set, err := snap.ToSet(gameID, opts.ConvertOptions)
			if err == nil {
				return set, nil
			}
			l.logger.Warn("Stored remote data cannot be converted, refetching", zap.Uint32("game_id", gameID), zap.Error(err))
		}
	}

	snap, err := l.fetcher.Fetch(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return snap.ToSet(gameID, opts.ConvertOptions)
}

func (l *Loader) stored(ctx context.Context, gameID uint32) (*Snapshot, error) {
	data, err := l.store.ReadFile(ctx, racache.SnapshotPath(gameID))
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
