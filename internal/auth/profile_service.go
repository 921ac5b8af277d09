package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix = "portal:profile:" // portal:profile:{sha256(token)}
	profileTTL       = 60 * time.Second
	minPasswordLen   = 6
)

// AccountBackend is the part of the backend client that owns accounts.
type AccountBackend interface {
	GetProfile(ctx context.Context, token string) (*backend.Profile, error)
	DeleteAccount(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
}

type ProfileService struct {
	backend AccountBackend
	redis   *redis.Client
}

// NewProfileService creates a ProfileService. A nil client disables profile
// caching.
func NewProfileService(b AccountBackend, client *redis.Client) *ProfileService {
	return &ProfileService{backend: b, redis: client}
}

// Resolve returns the profile behind token. Profiles are cached for a minute
// under a hash of the token.
func (s *ProfileService) Resolve(ctx context.Context, token string) (*backend.Profile, error) {
	key := profileKey(token)
	log := logging.FromContext(ctx)

	if s.redis != nil {
		data, err := s.redis.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var p backend.Profile
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
		case !errors.Is(err, redis.Nil):
			log.LogWarnf("resolve_profile", "profile cache read failed: %v", err)
		}
	}

	p, err := s.backend.GetProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(p); err == nil {
			if err := s.redis.Set(ctx, key, data, profileTTL).Err(); err != nil {
				log.LogWarnf("resolve_profile", "profile cache write failed: %v", err)
			}
		}
	}
	return p, nil
}

// DeleteAccount removes the account and forgets its cached profile.
func (s *ProfileService) DeleteAccount(ctx context.Context, token string) error {
	if err := s.backend.DeleteAccount(ctx, token); err != nil {
		return err
	}
	if s.redis != nil {
		s.redis.Del(ctx, profileKey(token))
	}
	return nil
}

func (s *ProfileService) ResetPassword(ctx context.Context, resetToken, password string) error {
	if resetToken == "" {
		return fmt.Errorf("%w: reset token is required", ErrInvalidPassword)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: must be at least %d characters", ErrInvalidPassword, minPasswordLen)
	}
	return s.backend.ResetPassword(ctx, resetToken, password)
}

func profileKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return profileKeyPrefix + hex.EncodeToString(sum[:])
}
