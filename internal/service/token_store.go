package service

import (
	"context"
	"fmt"
	"time"

	"clinic-appointment/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore is the Redis allow-list of issued JWT ids. A token whose id
// is missing from the store is treated as revoked.
type TokenStore struct {
	redisClient *redis.Client
}

func NewTokenStore(redisClient *redis.Client) *TokenStore {
	return &TokenStore{redisClient: redisClient}
}

func tokenKey(tokenType jwt.TokenType, userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, userID.String(), tokenID)
}

func (s *TokenStore) Save(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, tokenKey(tokenType, userID, tokenID), "valid", ttl).Err(); err != nil {
		return fmt.Errorf("store %s token: %w", tokenType, err)
	}
	return nil
}

func (s *TokenStore) IsValid(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, tokenKey(tokenType, userID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check %s token: %w", tokenType, err)
	}
	return exists > 0, nil
}

// Revoke deletes one token and reports whether it was present.
func (s *TokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	deleted, err := s.redisClient.Del(ctx, tokenKey(tokenType, userID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revoke %s token: %w", tokenType, err)
	}
	return deleted > 0, nil
}

// RevokeAll removes every access and refresh token of userID.
func (s *TokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := tokenKey(tokenType, userID, "*")
		iter := s.redisClient.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan %s tokens: %w", tokenType, err)
		}
		if len(keys) == 0 {
			continue
		}
		if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("revoke %s tokens: %w", tokenType, err)
		}
	}
	return nil
}
