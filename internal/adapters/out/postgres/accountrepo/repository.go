// Package accountrepo provides the GORM-based adapter for account lookups.
// The order service never owns account data: this package only answers
// existence checks against the accounts table and offers a small seeding
// helper for local setups.
package accountrepo

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountDTO represents the database structure for purchasing accounts.
type AccountDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for account entities.
// Overrides GORM's default naming convention to use "accounts" instead of "account_dtos".
func (AccountDTO) TableName() string {
	return "accounts"
}

// GormAccountDirectory implements ports.AccountDirectory over PostgreSQL.
type GormAccountDirectory struct {
	db *gorm.DB
}

// NewGormAccountDirectory creates a new GORM account directory.
func NewGormAccountDirectory(db *gorm.DB) *GormAccountDirectory {
	return &GormAccountDirectory{db: db}
}

// Exists reports whether an account with the given identifier is present.
func (r *GormAccountDirectory) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add persists an account record. Used for seeding development environments
// and integration tests.
func (r *GormAccountDirectory) Add(ctx context.Context, id kernel.UUID, name string) error {
	dto := AccountDTO{
		ID:        id.Bytes(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
