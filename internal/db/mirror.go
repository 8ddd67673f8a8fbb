package db

import (
	"bytes"
	"context"
	"time"

	"github.com/BangaloreConnect/bc/internal/utils"
	"go.uber.org/zap"
)

// Mirror receives a copy of every collection snapshot after it was persisted.
// at is the time of the local write, not of the upload.
type Mirror interface {
	Put(ctx context.Context, name string, at time.Time, data []byte) error
}

// MirroredBackend writes through to Backend and then hands the snapshot to a
// Mirror on a worker pool. Mirror failures are logged and never fail a write.
type MirroredBackend struct {
	Backend
	mirror  Mirror
	pool    *utils.WorkerPool
	l       *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewMirroredBackend(b Backend, m Mirror, pool *utils.WorkerPool, l *zap.Logger) *MirroredBackend {
	return &MirroredBackend{
		Backend: b,
		mirror:  m,
		pool:    pool,
		l:       l,
		timeout: 30 * time.Second,
		now:     time.Now,
	}
}

func (m *MirroredBackend) Write(ctx context.Context, name string, data []byte) error {
	if err := m.Backend.Write(ctx, name, data); err != nil {
		return err
	}

	// stamped here because uploads may finish out of order
	at := m.now()
	snapshot := bytes.Clone(data)
	queued := m.pool.AddTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		if err := m.mirror.Put(ctx, name, at, snapshot); err != nil {
			m.l.Warn("failed to mirror collection snapshot", zap.String("collection", name), zap.Error(err))
		}
	})
	if !queued {
		m.l.Warn("mirror pool closed, snapshot not uploaded", zap.String("collection", name))
	}
	return nil
}
