package service

import (
	"context"

	"github.com/divops/tarotai/internal/domain"
)

// The store interfaces mirror the record-store contract: insert-one and
// bounded fetch-many only. No filtering is pushed down to storage; every
// category, keyword, user, or discussion filter runs in the service layer
// over the fetched batch.

// CardStore provides the fixed card catalog.
type CardStore interface {
	FetchDeck(ctx context.Context) ([]domain.TarotCard, error)
}

// FeedbackStore persists the raw feedback audit trail.
type FeedbackStore interface {
	Insert(ctx context.Context, record *domain.FeedbackRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.FeedbackRecord, error)
}

// ContextStore persists reading contexts learned from well-rated feedback.
type ContextStore interface {
	Insert(ctx context.Context, rc *domain.ReadingContext) error
	ListRecent(ctx context.Context, limit int) ([]domain.ReadingContext, error)
}

// KeywordStore persists learned keyword meanings.
type KeywordStore interface {
	Insert(ctx context.Context, km *domain.KeywordMeaning) error
	Save(ctx context.Context, km *domain.KeywordMeaning) error
	ListRecent(ctx context.Context, limit int) ([]domain.KeywordMeaning, error)
}

// DiscussionStore persists discussion threads and followups.
type DiscussionStore interface {
	Insert(ctx context.Context, d *domain.Discussion) error
	ListRecent(ctx context.Context, limit int) ([]domain.Discussion, error)
	InsertFollowup(ctx context.Context, f *domain.FollowupQuestion) error
	ListRecentFollowups(ctx context.Context, limit int) ([]domain.FollowupQuestion, error)
}
