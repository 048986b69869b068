package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist marks user ids whose outstanding tokens must no longer be honored.
// Tokens themselves are stateless and stay signature-valid until expiry; the
// denylist is the opt-in layer that turns a delete or disable into an
// effective revocation. Entries expire after the token ttl, by which time any
// token issued before the denial has expired on its own.
//
// Key format: denied:<user_id>
type Denylist struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDenylist(client *redis.Client, ttl time.Duration) *Denylist {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Denylist{client: client, ttl: ttl}
}

// Deny invalidates all outstanding tokens for the user.
func (d *Denylist) Deny(ctx context.Context, userID string) error {
	return d.client.Set(ctx, d.key(userID), "1", d.ttl).Err()
}

// IsDenied reports whether tokens for the user must be rejected.
func (d *Denylist) IsDenied(ctx context.Context, userID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(userID string) string {
	return "denied:" + userID
}
