package racache

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"achievement-manager/core/storage"

	"github.com/spf13/afero"
)

// ErrNotExist is returned when a requested file is missing from the store.
var ErrNotExist = errors.New("file does not exist")

// Store reads and writes files relative to the RACache root.
// Names always use forward slashes.
type Store interface {
	// ReadFile returns the content of name, or an error wrapping ErrNotExist.
	ReadFile(ctx context.Context, name string) ([]byte, error)
	// WriteFile creates or replaces name.
	WriteFile(ctx context.Context, name string, data []byte) error
	// List returns the names of the files directly inside dir.
	List(ctx context.Context, dir string) ([]string, error)
	// Location describes where name lives, for log messages.
	Location(name string) string
}

// SnapshotPath is where the remote snapshot of a game is kept.
func SnapshotPath(gameID uint32) string {
	return "RACache/Data/" + strconv.FormatUint(uint64(gameID), 10) + ".json"
}

// LocalPath is where the local file of a game is kept.
func LocalPath(gameID uint32) string {
	return "RACache/Data/" + strconv.FormatUint(uint64(gameID), 10) + "-User.txt"
}

// New creates the store selected by cfg.Backend. client is only used by the s3 backend.
func New(cfg Config, client storage.Client, bucket string) (Store, error) {
	switch cfg.Backend {
	case BackendFS, "":
		if cfg.Path == "" {
			return nil, errors.New("RACACHE environment variable is not defined")
		}
		if !filepath.IsAbs(cfg.Path) {
			return nil, errors.New("RACACHE path must be absolute")
		}
		osFs := afero.NewOsFs()
		if ok, _ := afero.DirExists(osFs, cfg.Path); !ok {
			return nil, fmt.Errorf("RACACHE path %q does not exist", cfg.Path)
		}
		return NewFS(osFs, cfg.Path), nil
	case BackendS3:
		if client == nil {
			return nil, errors.New("s3 backend requires a storage client")
		}
		return NewObject(client, bucket, cfg.Prefix), nil
	}
	return nil, fmt.Errorf("unknown racache backend %q", cfg.Backend)
}
