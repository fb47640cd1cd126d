// Package cache keeps revoked access tokens close to the authentication
// middleware so most requests do not hit the blacklist table.
package cache

import (
	"context"
	"time"
)

// TokenCache remembers revoked tokens until their expiry.
type TokenCache interface {
	// Contains reports whether token was recorded as revoked and has not
	// expired yet.
	Contains(ctx context.Context, token string) (bool, error)
	// Add records token as revoked until expiresAt. Tokens already past
	// expiresAt are ignored.
	Add(ctx context.Context, token string, expiresAt time.Time) error
}
