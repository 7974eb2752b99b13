package interfaces

import "context"

// ISessionStore persists one session credential per client key.
//
// Get returns "" with a nil error when nothing is stored for key.

type ISessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, token string) error
	Clear(ctx context.Context, key string) error
}
