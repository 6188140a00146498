package repository

import (
	"context"
	"fmt"

	"github.com/divops/tarotai/internal/domain"
	"gorm.io/gorm"
)

// ContextRepository stores reading contexts captured from well-rated feedback.
//
// Like the other learning collections it supports only insert-one and bounded
// fetch-many. Similarity scoring and category filtering run in-core against
// the fetched batch, never in the query.
type ContextRepository struct {
	db *gorm.DB
}

// NewContextRepository creates a new reading context repository instance.
func NewContextRepository(db *gorm.DB) *ContextRepository {
	return &ContextRepository{db: db}
}

// Insert persists a single reading context.
func (r *ContextRepository) Insert(ctx context.Context, rc *domain.ReadingContext) error {
	if err := r.db.WithContext(ctx).Create(rc).Error; err != nil {
		return fmt.Errorf("failed to insert reading context: %w", err)
	}
	return nil
}

// ListRecent fetches up to limit reading contexts, newest first.
func (r *ContextRepository) ListRecent(ctx context.Context, limit int) ([]domain.ReadingContext, error) {
	var contexts []domain.ReadingContext
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&contexts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reading contexts: %w", err)
	}
	return contexts, nil
}
