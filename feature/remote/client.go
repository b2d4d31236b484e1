package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"achievement-manager/core/racache"

	"go.uber.org/zap"
)

// Fetcher downloads the remote snapshot of a game.
type Fetcher interface {
	Fetch(ctx context.Context, gameID uint32) (*Snapshot, error)
}

// Client fetches snapshots over HTTP and keeps a copy in RACache.
type Client struct {
	cfg    Config
	http   *http.Client
	store  racache.Store
	logger *zap.Logger

	credsOnce sync.Once
	creds     Credentials
	credsErr  error
}

// NewClient creates a client. httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client, store racache.Store, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{cfg: cfg, http: httpClient, store: store, logger: logger}
}

func (c *Client) credentials(ctx context.Context) (Credentials, error) {
	c.credsOnce.Do(func() {
		c.creds, c.credsErr = LoadCredentials(ctx, c.store)
	})
	return c.creds, c.credsErr
}

// Fetch downloads the snapshot of gameID and stores the raw response at
// racache.SnapshotPath(gameID).
func (c *Client) Fetch(ctx context.Context, gameID uint32) (*Snapshot, error) {
	creds, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Fetching remote data", zap.Uint32("game_id", gameID))

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	query := url.Values{}
	query.Set("r", "achievementsets")
	query.Set("t", creds.Token)
	query.Set("u", creds.Username)
	query.Set("g", strconv.FormatUint(uint64(gameID), 10))
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/dorequest.php?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote data: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("failed to fetch remote data: timed out: %w", err)
		}
		return nil, fmt.Errorf("failed to fetch remote data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch remote data: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote data: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("failed to fetch remote data: %w", err)
	}
	if !snap.Success {
		return nil, fmt.Errorf("failed to fetch remote data: expected payload.Success to be true, but got %t", snap.Success)
	}

	name := racache.SnapshotPath(gameID)
	if err := c.store.WriteFile(ctx, name, body); err != nil {
		return nil, err
	}
	c.logger.Info("Dumped remote data",
		zap.Uint32("game_id", gameID),
		zap.String("path", c.store.Location(name)),
	)

	return &snap, nil
}
