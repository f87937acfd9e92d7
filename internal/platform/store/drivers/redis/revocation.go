// Package redis keeps the refresh token deny list in Redis so that several
// service instances share it. Entries expire with the tokens they block.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/store"
)

const DefaultKeyPrefix = "platform:revoked:"

type RevocationList struct {
	client *goredis.Client
	prefix string
}

var _ store.RevokedTokens = (*RevocationList)(nil)

// NewRevocationList connects using a redis:// URL and checks the server is
// reachable.
func NewRevocationList(ctx context.Context, url string) (*RevocationList, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRevocationListFromClient(client, DefaultKeyPrefix), nil
}

func NewRevocationListFromClient(client *goredis.Client, prefix string) *RevocationList {
	return &RevocationList{client: client, prefix: prefix}
}

func (l *RevocationList) key(jti string) string { return l.prefix + jti }

type entry struct {
	UserID    string    `json:"userId"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// RevokeToken stores the JTI until the token would have expired anyway. A
// token that is already past expiry needs no entry and reports false.
func (l *RevocationList) RevokeToken(ctx context.Context, t domain.RevokedToken) (bool, error) {
	ttl := time.Until(t.ExpiresAt)
	if !t.CreatedAt.IsZero() {
		ttl = t.ExpiresAt.Sub(t.CreatedAt)
	}
	if ttl <= 0 {
		return false, nil
	}

	payload, err := json.Marshal(entry{UserID: t.UserID, Reason: t.Reason, CreatedAt: t.CreatedAt})
	if err != nil {
		return false, err
	}
	return l.client.SetNX(ctx, l.key(t.JTI), payload, ttl).Result()
}

// IsTokenRevoked relies on key expiry; now is only consulted by stores that
// keep expired rows around.
func (l *RevocationList) IsTokenRevoked(ctx context.Context, jti string, _ time.Time) (bool, error) {
	err := l.client.Get(ctx, l.key(jti)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, goredis.Nil):
		return false, nil
	default:
		return false, err
	}
}

// DeleteExpiredRevokedTokens is a no-op: Redis evicts entries on TTL.
func (l *RevocationList) DeleteExpiredRevokedTokens(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (l *RevocationList) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RevocationList) Close() error {
	return l.client.Close()
}
