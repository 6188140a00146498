package repository

import (
	"context"
	"fmt"

	"github.com/divops/tarotai/internal/domain"
	"gorm.io/gorm"
)

// FeedbackRepository stores the raw feedback audit trail.
//
// It deliberately exposes only insert-one and bounded fetch-many operations.
// Any filtering by user, discussion, or rating happens in the service layer
// after the bulk fetch.
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository instance.
func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Insert persists a single feedback audit record.
func (r *FeedbackRepository) Insert(ctx context.Context, record *domain.FeedbackRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to insert feedback record: %w", err)
	}
	return nil
}

// ListRecent fetches up to limit feedback records, newest first.
// Parameters:
//   - ctx: request context for cancellation.
//   - limit: maximum number of records to return.
// Returns:
//   - []domain.FeedbackRecord: fetched records.
//   - error: non-nil if the query fails.
func (r *FeedbackRepository) ListRecent(ctx context.Context, limit int) ([]domain.FeedbackRecord, error) {
	var records []domain.FeedbackRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback records: %w", err)
	}
	return records, nil
}
