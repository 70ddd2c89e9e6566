package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/rovermap/gridmap"
)

// fileExt is appended to every map name on disk.
const fileExt = ".map"

// FileStore keeps each map in its own file under dir.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: create %s: %w", dir, err)
	}

	return &FileStore{dir: dir, logger: orDefault(logger)}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Save writes g to <dir>/<name>.map atomically.
func (s *FileStore) Save(name string, g *gridmap.GridMap) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("workspace: save %s: %w", name, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := g.Encode(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("workspace: save %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("workspace: save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("workspace: save %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("workspace: save %s: %w", name, err)
	}
	s.logger.Debug("map saved",
		slog.String("name", name),
		slog.String("path", s.path(name)),
		slog.Int("width", g.Width()),
		slog.Int("height", g.Height()),
	)

	return nil
}

// Load reads <dir>/<name>.map.
func (s *FileStore) Load(name string) (*gridmap.GridMap, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("workspace: load %s: %w", name, err)
	}
	g, err := gridmap.Load(data)
	if err != nil {
		return nil, fmt.Errorf("workspace: load %s: %w", name, err)
	}

	return g, nil
}

// List returns the stored map names in lexical order.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("workspace: list %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), fileExt)
		if !ok || e.IsDir() || ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// Delete removes the named map.
func (s *FileStore) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("workspace: delete %s: %w", name, err)
	}
	s.logger.Debug("map deleted", slog.String("name", name))

	return nil
}

// Close is a no-op for files.
func (s *FileStore) Close() error { return nil }
