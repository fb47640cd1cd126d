package repositories

import (
	"context"
	"time"

	"docman/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlacklistRepository interface {
	// Add stores token; storing the same token twice is not an error.
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Get(ctx context.Context, token string) (*models.BlacklistedToken, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type blacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &blacklistRepository{db: db}
}

func (r *blacklistRepository) Add(ctx context.Context, token string, expiresAt time.Time) error {
	entry := &models.BlacklistedToken{Token: token, ExpiresAt: expiresAt}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(entry).Error
}

func (r *blacklistRepository) Get(ctx context.Context, token string) (*models.BlacklistedToken, error) {
	var entry models.BlacklistedToken
	err := r.db.WithContext(ctx).Where("token = ?", token).Take(&entry).Error
	return &entry, err
}

func (r *blacklistRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", before).Delete(&models.BlacklistedToken{})
	return res.RowsAffected, res.Error
}
