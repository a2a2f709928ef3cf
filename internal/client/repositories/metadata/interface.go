// Package metadata implements the small durable key-value store the session
// layer persists into: the raw bearer token, the serialized user profile,
// and the legacy user-id key older installs wrote.
package metadata

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
