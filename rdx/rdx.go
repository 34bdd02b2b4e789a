package rdx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func Init(addr, password string) error {
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return Conn.Ping(context.Background()).Err()
}

const revokedPrefix = "revoked:token:"

// RevokeToken blacklists a token id until its natural expiry.
func RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return Conn.Set(ctx, revokedPrefix+tokenID, "1", ttl).Err()
}

func IsTokenRevoked(ctx context.Context, tokenID string) bool {
	if Conn == nil {
		return false
	}
	n, err := Conn.Exists(ctx, revokedPrefix+tokenID).Result()
	return err == nil && n > 0
}
