// Package metadata is the console's local key/value store. It keeps what has
// to survive a restart: the access token, the salt used to seal it and the
// refresh cookie jar.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyAccessToken = "access_token"
	KeyTokenSalt   = "token_salt"
	KeyCookies     = "cookies"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent. A present key never
	// yields nil, even if it was set to nil.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the given keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
