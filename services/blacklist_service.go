package services

import (
	"context"
	"errors"
	"time"

	"docman/cache"
	"docman/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BlacklistService tracks tokens that were logged out. The table is the
// source of truth; the cache only ever holds revoked tokens.
type BlacklistService interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type blacklistService struct {
	repo  repositories.BlacklistRepository
	cache cache.TokenCache
	log   *zap.Logger
	now   func() time.Time
}

func NewBlacklistService(repo repositories.BlacklistRepository, tokenCache cache.TokenCache, log *zap.Logger) BlacklistService {
	if log == nil {
		log = zap.NewNop()
	}
	return &blacklistService{
		repo:  repo,
		cache: tokenCache,
		log:   log,
		now:   time.Now,
	}
}

func (s *blacklistService) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if err := s.repo.Add(ctx, token, expiresAt); err != nil {
		return storeError(s.log, "blacklist.add", err, "", "")
	}

	s.remember(ctx, token, expiresAt)
	return nil
}

func (s *blacklistService) IsRevoked(ctx context.Context, token string) (bool, error) {
	if s.cache != nil {
		hit, err := s.cache.Contains(ctx, token)
		if err != nil {
			s.log.Warn("token cache lookup failed", zap.Error(err))
		} else if hit {
			return true, nil
		}
	}

	entry, err := s.repo.Get(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError(s.log, "blacklist.get", err, "", "")
	}

	s.remember(ctx, token, entry.ExpiresAt)
	return true, nil
}

func (s *blacklistService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, storeError(s.log, "blacklist.purge", err, "", "")
	}

	s.log.Info("purged expired blacklist entries", zap.Int64("count", n))
	return n, nil
}

func (s *blacklistService) remember(ctx context.Context, token string, expiresAt time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Add(ctx, token, expiresAt); err != nil {
		s.log.Warn("token cache write failed", zap.Error(err))
	}
}
