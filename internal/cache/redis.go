package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotCached is returned when no access token is stored for a user.
var ErrTokenNotCached = errors.New("access token not cached")

// TokenCache stores the currently-valid access token per user. A token that
// verifies cryptographically but is absent here is treated as revoked.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenCache(host string, port int, ttl time.Duration) (*TokenCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port),
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("✅ Connected to Redis")

	return &TokenCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func accessTokenKey(userID string) string {
	return "accessToken:" + userID
}

// GetAccessToken returns the cached token for a user
func (c *TokenCache) GetAccessToken(ctx context.Context, userID string) (string, error) {
	token, err := c.client.Get(ctx, accessTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotCached
		}
		return "", fmt.Errorf("failed to read token cache: %w", err)
	}

	return token, nil
}

// SetAccessToken stores the token for a user with the configured expiry
func (c *TokenCache) SetAccessToken(ctx context.Context, userID, token string) error {
	return c.client.Set(ctx, accessTokenKey(userID), token, c.ttl).Err()
}

// DeleteAccessToken revokes a user's token (logout/rotation)
func (c *TokenCache) DeleteAccessToken(ctx context.Context, userID string) error {
	return c.client.Del(ctx, accessTokenKey(userID)).Err()
}

// Close closes the Redis connection
func (c *TokenCache) Close() error {
	return c.client.Close()
}
