package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ErrNoChange may be returned from an Update callback to skip the write.
var ErrNoChange = errors.New("no change")

// Store hands out typed collections over one Backend and owns the
// per-collection locks that serialize writers.
type Store struct {
	backend Backend
	l       *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func NewStore(backend Backend, l *zap.Logger) *Store {
	return &Store{
		backend: backend,
		l:       l,
		locks:   make(map[string]*sync.RWMutex),
	}
}

func (s *Store) lock(name string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lk, ok := s.locks[name]
	if !ok {
		lk = &sync.RWMutex{}
		s.locks[name] = lk
	}
	return lk
}

// Collection is a named, ordered list of records persisted as one unit.
// Every Load decodes a fresh copy, so callers may mutate what they get back.
type Collection[T any] struct {
	store *Store
	name  string
	seed  []T
	lk    *sync.RWMutex
}

// NewCollection binds name to a typed view. seed is written the first time the
// collection is found absent; nil means an empty collection.
func NewCollection[T any](s *Store, name string, seed []T) *Collection[T] {
	return &Collection[T]{
		store: s,
		name:  name,
		seed:  seed,
		lk:    s.lock(name),
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.lk.RLock()
	records, err := c.read(ctx)
	c.lk.RUnlock()
	if !errors.Is(err, ErrNotExist) {
		return records, err
	}

	c.lk.Lock()
	defer c.lk.Unlock()
	return c.loadOrInit(ctx)
}

func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.lk.Lock()
	defer c.lk.Unlock()
	return c.write(ctx, records)
}

// Update runs a load-modify-save cycle while holding the collection's write
// lock. An absent collection starts from the seed and is written once, with
// fn's result. When fn fails nothing is written; ErrNoChange skips the write
// without reporting an error.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	c.lk.Lock()
	defer c.lk.Unlock()

	records, err := c.read(ctx)
	if errors.Is(err, ErrNotExist) {
		records, err = c.seedCopy()
	}
	if err != nil {
		return nil, err
	}
	next, err := fn(records)
	if errors.Is(err, ErrNoChange) {
		return records, nil
	}
	if err != nil {
		return nil, err
	}
	if err := c.write(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// loadOrInit must be called with the write lock held.
func (c *Collection[T]) loadOrInit(ctx context.Context) ([]T, error) {
	records, err := c.read(ctx)
	if !errors.Is(err, ErrNotExist) {
		return records, err
	}

	if err := c.write(ctx, c.seed); err != nil {
		return nil, err
	}
	c.store.l.Info("collection initialized", zap.String("collection", c.name), zap.Int("records", len(c.seed)))
	return c.read(ctx)
}

// seedCopy returns a deep copy of the seed so callers may mutate it.
func (c *Collection[T]) seedCopy() ([]T, error) {
	records := []T{}
	if len(c.seed) == 0 {
		return records, nil
	}
	data, err := json.Marshal(c.seed)
	if err != nil {
		return nil, fmt.Errorf("encode %s seed: %w", c.name, err)
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s seed: %w", c.name, err)
	}
	return records, nil
}

func (c *Collection[T]) read(ctx context.Context) ([]T, error) {
	data, err := c.store.backend.Read(ctx, c.name)
	if errors.Is(err, ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorageUnavailable, c.name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrCorruptStore, c.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) write(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.store.backend.Write(ctx, c.name, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorageUnavailable, c.name, err)
	}
	return nil
}
