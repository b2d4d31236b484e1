package cmd

import (
	"context"
	"fmt"
	"net/http"

	"achievement-manager/core/config"
	"achievement-manager/core/logger"
	"achievement-manager/core/racache"
	"achievement-manager/core/storage"
	"achievement-manager/feature/remote"
	"achievement-manager/feature/sets"

	"go.uber.org/zap"
)

// app bundles the collaborators every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  racache.Store
	client *remote.Client
	loader *remote.Loader
	sets   *sets.Service
}

// newApp loads the configuration and wires RACache, the remote client and the
// sets service. timeoutSeconds overrides remote.timeout_seconds when positive.
func newApp(ctx context.Context, timeoutSeconds int) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if timeoutSeconds > 0 {
		cfg.Remote.TimeoutSeconds = timeoutSeconds
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var objects storage.Client
	if cfg.RACache.Backend == racache.BackendS3 {
		if objects, err = storage.NewClient(cfg.Storage); err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, objects, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
	}

	store, err := racache.New(cfg.RACache, objects, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	client := remote.NewClient(cfg.Remote, &http.Client{}, store, l)
	loader := remote.NewLoader(client, store, l)

	return &app{
		cfg:    cfg,
		logger: l,
		store:  store,
		client: client,
		loader: loader,
		sets:   sets.NewService(store, loader, l),
	}, nil
}
