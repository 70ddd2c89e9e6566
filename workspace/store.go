package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/katalvlaran/rovermap/config"
	"github.com/katalvlaran/rovermap/gridmap"
)

// Sentinel errors for workspace operations.
var (
	// ErrNotFound indicates no map is stored under the requested name.
	ErrNotFound = errors.New("workspace: map not found")
	// ErrInvalidName indicates a name outside the allowed character set.
	ErrInvalidName = errors.New("workspace: invalid map name")
	// ErrUnknownBackend indicates a backend name Open does not recognise.
	ErrUnknownBackend = errors.New("workspace: unknown backend")
)

// Store saves and loads named maps.
type Store interface {
	Save(name string, g *gridmap.GridMap) error
	Load(name string) (*gridmap.GridMap, error)
	List() ([]string, error)
	Delete(name string) error
	Close() error
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]{0,63}$`)

// ValidateName reports ErrInvalidName unless name is usable as a map name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// Open returns the Store selected by cfg.Backend rooted at cfg.Dir.
// A nil logger uses slog.Default().
func Open(cfg config.Workspace, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Dir, logger)
	case config.BackendBadger:
		return OpenBadger(cfg.Dir, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}

	return logger
}
