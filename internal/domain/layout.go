package domain

// Orientation represents the orientation of a drawn tarot card.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// RNG abstracts random number generation so draws can be made deterministic
// in tests.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// spreadPositions maps spread length to its fixed, ordered position labels.
var spreadPositions = map[int][]string{
	1: {"present"},
	3: {"past", "present", "future"},
}

// PositionKeywords is the fixed keyword set attached to each spread position,
// independent of which card lands there.
var PositionKeywords = map[string][]string{
	"past":    {"roots", "foundation", "history", "origin"},
	"present": {"focus", "challenge", "opportunity", "awareness"},
	"future":  {"potential", "direction", "outcome", "change"},
}

// CardPlacement is one card within a layout: the card's name, its position
// label, its orientation, the meaning resolved from the card's light or
// shadow list, and the position's fixed keyword set.
type CardPlacement struct {
	Name             string      `json:"name"`
	Position         string      `json:"position"`
	Orientation      Orientation `json:"orientation"`
	Meaning          string      `json:"meaning"`
	PositionKeywords []string    `json:"position_keywords"`
}

// Upright reports whether the placement's card was drawn upright.
func (p CardPlacement) Upright() bool {
	return p.Orientation == Upright
}

// Layout is an ordered sequence of card placements produced by one draw.
// Order follows the fixed position order of the spread, not sampling order.
type Layout []CardPlacement

// CardNames returns the card names in position order.
func (l Layout) CardNames() []string {
	names := make([]string, len(l))
	for i, p := range l {
		names[i] = p.Name
	}
	return names
}

// GenerateLayout draws count distinct cards from deck uniformly at random
// without replacement and assigns them to the fixed position set for that
// spread length. Orientation is an independent fair coin flip per placement;
// meaning comes from the card's light list when upright, shadow list when
// reversed (empty when the chosen list is empty).
func GenerateLayout(deck []TarotCard, count int, rng RNG) (Layout, error) {
	if count > len(deck) {
		return nil, ErrInsufficientDeck
	}
	positions, ok := spreadPositions[count]
	if !ok {
		return nil, ErrUnknownSpreadSize
	}

	// Partial Fisher-Yates: only the first count indices matter.
	indices := make([]int, len(deck))
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	layout := make(Layout, count)
	for i := 0; i < count; i++ {
		card := deck[indices[i]]
		orientation := Upright
		if rng.Intn(2) == 1 {
			orientation = Reversed
		}
		pos := positions[i]
		layout[i] = CardPlacement{
			Name:             card.Name,
			Position:         pos,
			Orientation:      orientation,
			Meaning:          resolveMeaning(card, orientation),
			PositionKeywords: PositionKeywords[pos],
		}
	}
	return layout, nil
}

// resolveMeaning picks one representative meaning string for the orientation.
func resolveMeaning(card TarotCard, orientation Orientation) string {
	list := card.MeaningsLight
	if orientation == Reversed {
		list = card.MeaningsShadow
	}
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
