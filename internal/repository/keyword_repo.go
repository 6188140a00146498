package repository

import (
	"context"
	"fmt"

	"github.com/divops/tarotai/internal/domain"
	"gorm.io/gorm"
)

// KeywordRepository stores learned keyword meanings.
//
// Lookup-then-create-or-append logic lives in the feedback service; the
// repository only knows how to insert, save, and bulk fetch. Concurrent
// feedback for the same keyword can create duplicate rows, which the
// service tolerates.
type KeywordRepository struct {
	db *gorm.DB
}

// NewKeywordRepository creates a new keyword meaning repository instance.
func NewKeywordRepository(db *gorm.DB) *KeywordRepository {
	return &KeywordRepository{db: db}
}

// Insert persists a new keyword meaning record.
func (r *KeywordRepository) Insert(ctx context.Context, km *domain.KeywordMeaning) error {
	if err := r.db.WithContext(ctx).Create(km).Error; err != nil {
		return fmt.Errorf("failed to insert keyword meaning: %w", err)
	}
	return nil
}

// Save writes back an updated keyword meaning record.
func (r *KeywordRepository) Save(ctx context.Context, km *domain.KeywordMeaning) error {
	if err := r.db.WithContext(ctx).Save(km).Error; err != nil {
		return fmt.Errorf("failed to update keyword meaning: %w", err)
	}
	return nil
}

// ListRecent fetches up to limit keyword meanings, newest first.
func (r *KeywordRepository) ListRecent(ctx context.Context, limit int) ([]domain.KeywordMeaning, error) {
	var meanings []domain.KeywordMeaning
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&meanings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list keyword meanings: %w", err)
	}
	return meanings, nil
}
