package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"microblog-backend/internal/domains/auth"
)

const (
	otpKeyPrefix     = "otp:"
	sessionKeyPrefix = "session:"
)

// redisOTPRegistry stores pending codes as JSON values under otp:<email>.
// Keys carry a TTL of twice the code lifetime: the lazy expiry check in
// the service stays authoritative, so an expired-but-present entry still
// yields Expired rather than NoPendingRequest.
type redisOTPRegistry struct {
	client *redis.Client
	keyTTL time.Duration
}

func NewRedisOTPRegistry(client *redis.Client, codeTTL time.Duration) auth.OTPRegistry {
	return &redisOTPRegistry{client: client, keyTTL: 2 * codeTTL}
}

func (r *redisOTPRegistry) Put(ctx context.Context, entry auth.OTPEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal otp entry: %w", err)
	}
	if err := r.client.Set(ctx, otpKeyPrefix+entry.Email, data, r.keyTTL).Err(); err != nil {
		return fmt.Errorf("store otp entry: %w", err)
	}
	return nil
}

func (r *redisOTPRegistry) Get(ctx context.Context, email string) (*auth.OTPEntry, error) {
	data, err := r.client.Get(ctx, otpKeyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrNoPendingRequest
		}
		return nil, fmt.Errorf("load otp entry: %w", err)
	}

	var entry auth.OTPEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode otp entry: %w", err)
	}
	return &entry, nil
}

func (r *redisOTPRegistry) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, otpKeyPrefix+email).Err(); err != nil {
		return fmt.Errorf("delete otp entry: %w", err)
	}
	return nil
}

func (r *redisOTPRegistry) Sweep(ctx context.Context, now time.Time) (int, error) {
	removed := 0
	iter := r.client.Scan(ctx, 0, otpKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return removed, fmt.Errorf("sweep load %s: %w", key, err)
		}

		var entry auth.OTPEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			// Undecodable entry: drop it rather than keep it forever.
			_ = r.client.Del(ctx, key).Err()
			removed++
			continue
		}

		if entry.Expired(now) {
			if err := r.client.Del(ctx, key).Err(); err != nil {
				return removed, fmt.Errorf("sweep delete %s: %w", key, err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("sweep scan: %w", err)
	}
	return removed, nil
}

// redisSessionRegistry stores sessions under session:<token> with no
// TTL; with this backend tokens survive process restarts.
type redisSessionRegistry struct {
	client *redis.Client
}

func NewRedisSessionRegistry(client *redis.Client) auth.SessionRegistry {
	return &redisSessionRegistry{client: client}
}

func (r *redisSessionRegistry) Put(ctx context.Context, session auth.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.Token, data, 0).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *redisSessionRegistry) Get(ctx context.Context, token string) (*auth.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session auth.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}
