package sets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"achievement-manager/core/asset"
	"achievement-manager/core/cachefile"
	"achievement-manager/core/racache"
	"achievement-manager/core/reconcile"
	"achievement-manager/feature/lint"
	"achievement-manager/feature/remote"

	"go.uber.org/zap"
)

var (
	// ErrEmptySet is returned for Input collections without assets.
	ErrEmptySet = errors.New("set doesn't define any achievements or leaderboards")
	// ErrLocalFileBroken is returned when a strictly parsed local file has
	// invalid lines and no rewrite was forced.
	ErrLocalFileBroken = errors.New("local file got issues")
	// ErrRemote wraps every failure to obtain the remote set.
	ErrRemote = errors.New("remote data got issues")
)

// RemoteLoader provides the remote set of a game.
type RemoteLoader interface {
	Load(ctx context.Context, gameID uint32, opts remote.LoadOptions) (*asset.Set, error)
}

// PlanOptions controls a Plan call.
type PlanOptions struct {
	Filters           []reconcile.Filter
	IncludeUnofficial bool
	Refetch           bool
	// StrictLocal fails on the first invalid local line. Use it before writing.
	StrictLocal bool
	// ForceRewrite drops a broken local file instead of failing. Only used
	// together with StrictLocal.
	ForceRewrite bool
}

// ApplyOptions guards Apply.
type ApplyOptions struct {
	// Confirmed must be true for Apply to write anything.
	Confirmed bool
	// DryRun disables writing even when confirmed.
	DryRun bool
}

// Plan is the outcome of a reconciliation that has not been written yet.
type Plan struct {
	GameID uint32
	Input  *asset.Set
	Remote *asset.Set
	// Local is nil when there is no local file or a broken one is rewritten.
	Local *cachefile.File
	// LocalPath is the RACache name of the local file.
	LocalPath  string
	Transcript *reconcile.Transcript
	Report     reconcile.Report
	// Content is the complete new local file.
	Content string
	Issues  []lint.Issue
}

// Service plans and applies reconciliations against RACache.
type Service struct {
	store  racache.Store
	remote RemoteLoader
	logger *zap.Logger
}

// NewService creates a new sets service.
func NewService(store racache.Store, remote RemoteLoader, logger *zap.Logger) *Service {
	return &Service{store: store, remote: remote, logger: logger}
}

// Plan reconciles input with the remote set and the local file of its game.
func (s *Service) Plan(ctx context.Context, input *asset.Set, opts PlanOptions) (*Plan, error) {
	if input == nil || input.Len() == 0 {
		return nil, ErrEmptySet
	}
	gameID := input.GameID()

	var (
		remoteSet *asset.Set
		local     *cachefile.File
		remoteErr error
		localErr  error
		wg        sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		remoteSet, remoteErr = s.remote.Load(ctx, gameID, remote.LoadOptions{
			ConvertOptions: remote.ConvertOptions{SetID: input.ID(), IncludeUnofficial: opts.IncludeUnofficial},
			Refetch:        opts.Refetch,
		})
	}()

	go func() {
		defer wg.Done()
		local, localErr = s.loadLocal(ctx, gameID, opts)
	}()

	wg.Wait()

	if localErr != nil {
		return nil, localErr
	}
	if remoteErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemote, remoteErr)
	}

	transcript, err := reconcile.Reconcile(input, remoteSet, local, reconcile.Options{Filters: opts.Filters})
	if err != nil {
		return nil, err
	}

	return &Plan{
		GameID:     gameID,
		Input:      input,
		Remote:     remoteSet,
		Local:      local,
		LocalPath:  racache.LocalPath(gameID),
		Transcript: transcript,
		Report:     reconcile.Classify(transcript),
		Content:    transcript.Render(local, input.Title()),
		Issues:     lint.Check(input),
	}, nil
}

func (s *Service) loadLocal(ctx context.Context, gameID uint32, opts PlanOptions) (*cachefile.File, error) {
	name := racache.LocalPath(gameID)
	data, err := s.store.ReadFile(ctx, name)
	if errors.Is(err, racache.ErrNotExist) {
		s.logger.Info("Local file doesn't exist, will not diff against local file", zap.String("path", s.store.Location(name)))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local file: %w", err)
	}

	local, err := cachefile.Parse(string(data), cachefile.ParseOptions{Strict: opts.StrictLocal})
	if err == nil {
		return local, nil
	}
	if opts.StrictLocal && opts.ForceRewrite {
		s.logger.Warn("Local file got issues, rewriting it from scratch", zap.String("path", s.store.Location(name)), zap.Error(err))
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrLocalFileBroken, s.store.Location(name), err)
}

// Apply writes the planned local file. It reports whether the file was written.
func (s *Service) Apply(ctx context.Context, plan *Plan, opts ApplyOptions) (bool, error) {
	if !opts.Confirmed || opts.DryRun {
		return false, nil
	}

	if err := s.store.WriteFile(ctx, plan.LocalPath, []byte(plan.Content)); err != nil {
		return false, fmt.Errorf("failed to write local file: %w", err)
	}

	s.logger.Info("Dumped local data",
		zap.Uint32("game_id", plan.GameID),
		zap.String("path", s.store.Location(plan.LocalPath)),
	)
	for _, line := range plan.Report.Stats() {
		s.logger.Info(line)
	}
	return true, nil
}

// LogWarnings logs unparsable local lines and lint issues of plan.
func (s *Service) LogWarnings(plan *Plan) {
	for _, w := range plan.Transcript.Warnings {
		s.logger.Warn(w.String())
	}
	for _, issue := range plan.Issues {
		s.logger.Warn(issue.Message, zap.String("rule", string(issue.Rule)))
	}
}
