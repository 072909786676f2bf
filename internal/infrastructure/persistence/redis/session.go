package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/javanauta/user-directory/pkg/errors"
)

// SessionStore keeps login sessions and the JWT blacklist in redis.
// Keys: session:{user_id} and blacklist:{token}. Blacklisting is what makes
// logout effective before the access token expires on its own.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates the session store.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession stores login metadata for the user with the given TTL, which
// should match the refresh-token lifetime.
func (s *SessionStore) SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("session:%d", userID)

	if err := s.client.HMSet(ctx, key, sessionData).Err(); err != nil {
		return apperrors.Wrap(err, "failed to save session")
	}

	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to set session expiry")
	}

	return nil
}

// GetSession returns the stored session, or ErrUnauthorized if none exists.
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (map[string]string, error) {
	key := fmt.Sprintf("session:%d", userID)

	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read session")
	}

	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	return result, nil
}

// DeleteSession drops the session on logout.
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("session:%d", userID)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return apperrors.Wrap(err, "failed to delete session")
	}

	return nil
}

// AddToBlacklist revokes an access token for the remainder of its lifetime.
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", token)

	if err := s.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to blacklist token")
	}

	return nil
}

// IsInBlacklist reports whether a token has been revoked.
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check token blacklist")
	}

	return exists > 0, nil
}
