package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/rovermap/gridmap"
)

// keyPrefix namespaces map entries in the database.
const keyPrefix = "map/"

// BadgerStore keeps maps in a Badger key-value database.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenBadger opens (or creates) a Badger database in dir.
func OpenBadger(dir string, logger *slog.Logger) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir), logger)
}

// OpenBadgerInMemory opens a database that lives only in memory.
func OpenBadgerInMemory(logger *slog.Logger) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true), logger)
}

func openBadger(opts badger.Options, logger *slog.Logger) (*BadgerStore, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("workspace: open badger: %w", err)
	}

	return &BadgerStore{db: db, logger: orDefault(logger)}, nil
}

// Save stores g under name, replacing any previous version.
func (s *BadgerStore) Save(name string, g *gridmap.GridMap) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	data := g.Save()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+name), data)
	})
	if err != nil {
		return fmt.Errorf("workspace: save %s: %w", name, err)
	}
	s.logger.Debug("map saved",
		slog.String("name", name),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// Load fetches and parses the map stored under name.
func (s *BadgerStore) Load(name string) (*gridmap.GridMap, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
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

// List returns the stored map names in key order.
func (s *BadgerStore) List() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("workspace: list: %w", err)
	}

	return names, nil
}

// Delete removes the named map.
func (s *BadgerStore) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	key := []byte(keyPrefix + name)
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("workspace: delete %s: %w", name, err)
	}
	s.logger.Debug("map deleted", slog.String("name", name))

	return nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("workspace: close badger: %w", err)
	}

	return nil
}
