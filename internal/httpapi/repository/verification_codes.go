package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeNotFound = errors.New("verification code not found or expired")

// VerificationCodeStore holds the transient email verification codes issued
// during registration. Codes are externally owned and time-bounded; expiry
// is enforced by the store, not by in-process state.
type VerificationCodeStore interface {
	Save(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type redisCodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVerificationCodeStore(client *redis.Client, ttl time.Duration) VerificationCodeStore {
	return &redisCodeStore{client: client, ttl: ttl}
}

func codeKey(email string) string {
	return fmt.Sprintf("verify:email:%s", email)
}

func (s *redisCodeStore) Save(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, codeKey(email), code, s.ttl).Err()
}

func (s *redisCodeStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, codeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, codeKey(email)).Err()
}
