package racache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// FS is a Store on a filesystem directory.
type FS struct {
	root string
	fs   afero.Fs
}

// NewFS returns a store rooted at root on base.
func NewFS(base afero.Fs, root string) *FS {
	return &FS{root: root, fs: afero.NewBasePathFs(base, root)}
}

func (s *FS) ReadFile(_ context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.Location(name), ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Location(name), err)
	}
	return data, nil
}

func (s *FS) WriteFile(_ context.Context, name string, data []byte) error {
	if err := s.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.Location(name), err)
	}
	if err := afero.WriteFile(s.fs, name, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Location(name), err)
	}
	return nil
}

func (s *FS) List(_ context.Context, dir string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.Location(dir), ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.Location(dir), err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *FS) Location(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}
