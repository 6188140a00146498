// Package catalog provides the fixed tarot card catalog. The deck is
// embedded at build time and assumed static for the process lifetime.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/divops/tarotai/internal/domain"
)

//go:embed cards.json
var cardsJSON []byte

// Load parses the embedded deck. Card IDs are derived from the card name so
// repeated seeding is idempotent.
func Load() ([]domain.TarotCard, error) {
	var cards []domain.TarotCard
	if err := json.Unmarshal(cardsJSON, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse embedded card catalog: %w", err)
	}
	for i := range cards {
		if cards[i].ID == "" {
			cards[i].ID = slug(cards[i].Name)
		}
	}
	return cards, nil
}

func slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
