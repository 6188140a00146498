package repository

import (
	"context"
	"fmt"

	"github.com/divops/tarotai/internal/domain"
	"gorm.io/gorm"
)

// DiscussionRepository stores discussion threads and their followup questions.
// Per-discussion filtering happens in the service layer after a bounded fetch.
type DiscussionRepository struct {
	db *gorm.DB
}

// NewDiscussionRepository creates a new discussion repository instance.
func NewDiscussionRepository(db *gorm.DB) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

// Insert persists a new discussion thread.
func (r *DiscussionRepository) Insert(ctx context.Context, d *domain.Discussion) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to insert discussion: %w", err)
	}
	return nil
}

// ListRecent fetches up to limit discussions, newest first.
func (r *DiscussionRepository) ListRecent(ctx context.Context, limit int) ([]domain.Discussion, error) {
	var discussions []domain.Discussion
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&discussions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list discussions: %w", err)
	}
	return discussions, nil
}

// InsertFollowup persists a followup question within a discussion.
func (r *DiscussionRepository) InsertFollowup(ctx context.Context, f *domain.FollowupQuestion) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("failed to insert followup question: %w", err)
	}
	return nil
}

// ListRecentFollowups fetches up to limit followup questions, newest first.
func (r *DiscussionRepository) ListRecentFollowups(ctx context.Context, limit int) ([]domain.FollowupQuestion, error) {
	var followups []domain.FollowupQuestion
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&followups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followup questions: %w", err)
	}
	return followups, nil
}
