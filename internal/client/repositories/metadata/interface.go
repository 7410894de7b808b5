// Package metadata is a small key-value store for client-side state such as
// the access token and the cached user profile.
//
// Values are opaque bytes. A missing key is reported as (nil, nil) by Get,
// never as an error.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// Atomic runs fn against a view of the repository whose writes are
	// applied together or not at all.
	Atomic(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}
