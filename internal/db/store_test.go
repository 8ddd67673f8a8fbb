package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type record struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

type countingBackend struct {
	Backend
	writes atomic.Int32
}

func (c *countingBackend) Write(ctx context.Context, name string, data []byte) error {
	c.writes.Add(1)
	return c.Backend.Write(ctx, name, data)
}

func newFileStore(t *testing.T) (*Store, *countingBackend, string) {
	t.Helper()
	dir := t.TempDir()
	fb, err := NewFileBackend(dir)
	require.NoError(t, err)
	cb := &countingBackend{Backend: fb}
	return NewStore(cb, zap.NewNop()), cb, dir
}

func TestCollection_RoundTrip(t *testing.T) {
	store, _, _ := newFileStore(t)
	ctx := context.Background()
	coll := NewCollection[record](store, "things", nil)

	want := []record{
		{ID: "1", Tags: []string{"a", "b"}},
		{ID: "2", Tags: []string{}},
		{ID: "3", Tags: []string{"c"}},
	}
	require.NoError(t, coll.Save(ctx, want))

	got, err := coll.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCollection_LoadInitializesMissingCollection(t *testing.T) {
	store, cb, dir := newFileStore(t)
	ctx := context.Background()
	seed := []record{{ID: "seed", Tags: []string{"x"}}}
	coll := NewCollection(store, "jobs", seed)

	got, err := coll.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, got)
	assert.FileExists(t, filepath.Join(dir, "jobs.json"))
	assert.Equal(t, int32(1), cb.writes.Load())

	// A second load reads the file and never re-seeds.
	_, err = coll.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), cb.writes.Load())
}

func TestCollection_UpdateOnMissingCollectionWritesOnce(t *testing.T) {
	store, cb, _ := newFileStore(t)
	ctx := context.Background()
	seed := []record{{ID: "seed", Tags: []string{"x"}}}
	coll := NewCollection(store, "jobs", seed)

	got, err := coll.Update(ctx, func(r []record) ([]record, error) {
		r[0].Tags[0] = "changed"
		return append(r, record{ID: "2"}), nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(1), cb.writes.Load())
	assert.Equal(t, "x", seed[0].Tags[0], "seed must not be mutated through Update")

	loaded, err := coll.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "seed", Tags: []string{"changed"}}, {ID: "2", Tags: nil}}, loaded)
}

func TestCollection_NoChangeOnMissingCollectionWritesNothing(t *testing.T) {
	store, cb, dir := newFileStore(t)
	coll := NewCollection[record](store, "users", nil)

	got, err := coll.Update(context.Background(), func(r []record) ([]record, error) {
		return nil, ErrNoChange
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(0), cb.writes.Load())
	assert.NoFileExists(t, filepath.Join(dir, "users.json"))
}

func TestCollection_LoadEmptyWithoutSeed(t *testing.T) {
	store, _, dir := newFileStore(t)

	got, err := NewCollection[record](store, "users", nil).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	data, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestCollection_CorruptFileIsReported(t *testing.T) {
	store, cb, dir := newFileStore(t)
	path := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "1",`), 0o644))

	coll := NewCollection(store, "jobs", []record{{ID: "seed"}})
	_, err := coll.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptStore)

	_, err = coll.Update(context.Background(), func(r []record) ([]record, error) {
		return append(r, record{ID: "2"}), nil
	})
	assert.ErrorIs(t, err, ErrCorruptStore)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id": "1",`, string(data), "corrupt file must not be overwritten")
	assert.Equal(t, int32(0), cb.writes.Load())
}

func TestCollection_UnreadableFileIsUnavailable(t *testing.T) {
	store, _, dir := newFileStore(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "jobs.json"), 0o755))

	_, err := NewCollection[record](store, "jobs", nil).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NotErrorIs(t, err, ErrCorruptStore)
}

func TestCollection_UpdateSkipsWriteOnError(t *testing.T) {
	store, cb, _ := newFileStore(t)
	ctx := context.Background()
	coll := NewCollection[record](store, "things", nil)
	require.NoError(t, coll.Save(ctx, []record{{ID: "1"}}))
	before := cb.writes.Load()

	boom := errors.New("boom")
	_, err := coll.Update(ctx, func(r []record) ([]record, error) {
		return append(r, record{ID: "2"}), boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := coll.Update(ctx, func(r []record) ([]record, error) {
		return nil, ErrNoChange
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	assert.Equal(t, before, cb.writes.Load())
	loaded, err := coll.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "1"}}, loaded)
}

func TestCollection_ConcurrentUpdatesAreSerialized(t *testing.T) {
	store, _, _ := newFileStore(t)
	ctx := context.Background()
	coll := NewCollection[record](store, "things", nil)

	const writers = 40
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := coll.Update(ctx, func(r []record) ([]record, error) {
				return append(r, record{ID: "x"}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := coll.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, writers)
}

func TestFileBackend_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fb, err := NewFileBackend(filepath.Join(dir, "nested", "data"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, fb.Write(ctx, "jobs", []byte("[1]")))
	require.NoError(t, fb.Write(ctx, "jobs", []byte("[1,2]")))

	entries, err := os.ReadDir(fb.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "jobs.json", entries[0].Name())

	data, err := fb.Read(ctx, "jobs")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(data))

	_, err = fb.Read(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotExist)
}
