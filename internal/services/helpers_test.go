package services

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/BangaloreConnect/bc/internal/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingBackend struct {
	db.Backend
	writes atomic.Int32
}

func (c *countingBackend) Write(ctx context.Context, name string, data []byte) error {
	c.writes.Add(1)
	return c.Backend.Write(ctx, name, data)
}

func newTestStore(t *testing.T) (*db.Store, *countingBackend) {
	t.Helper()
	fb, err := db.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	cb := &countingBackend{Backend: fb}
	return db.NewStore(cb, zap.NewNop()), cb
}
