package repository

import (
	"context"
	"fmt"

	"github.com/divops/tarotai/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxDeckSize bounds deck fetches; a full tarot deck has 78 cards.
const maxDeckSize = 78

// CardRepository provides access to the tarot card catalog.
type CardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository instance.
func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// SeedCatalog inserts catalog cards that are not yet present. Existing cards
// are left untouched so local edits survive restarts.
// Parameters:
//   - ctx: request context for cancellation.
//   - cards: catalog entries to insert.
// Returns:
//   - error: non-nil if the insert fails.
func (r *CardRepository) SeedCatalog(ctx context.Context, cards []domain.TarotCard) error {
	if len(cards) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&cards).Error
	if err != nil {
		return fmt.Errorf("failed to seed card catalog: %w", err)
	}
	return nil
}

// FetchDeck returns the full card catalog, bounded by the maximum deck size.
// Parameters:
//   - ctx: request context for cancellation.
// Returns:
//   - []domain.TarotCard: all cards in the catalog.
//   - error: non-nil if the query fails.
func (r *CardRepository) FetchDeck(ctx context.Context) ([]domain.TarotCard, error) {
	var cards []domain.TarotCard
	err := r.db.WithContext(ctx).
		Order("number ASC").
		Limit(maxDeckSize).
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deck: %w", err)
	}
	return cards, nil
}
