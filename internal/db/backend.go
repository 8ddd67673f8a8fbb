package db

import "context"

// Backend persists whole collections as opaque JSON documents. Write must
// replace the previous content atomically: a concurrent Read sees either the
// old document or the new one, never a mix.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}
