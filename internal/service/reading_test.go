package service

import (
	"context"
	"testing"

	"github.com/divops/tarotai/internal/domain"
)

type fakeCardStore struct {
	deck []domain.TarotCard
	fail bool
}

func (f *fakeCardStore) FetchDeck(_ context.Context) ([]domain.TarotCard, error) {
	if f.fail {
		return nil, errStoreDown
	}
	return f.deck, nil
}

// stepRNG walks a fixed sequence so draws are reproducible.
type stepRNG struct {
	values []int
	idx    int
}

func (r *stepRNG) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func testCards() []domain.TarotCard {
	names := []string{"The Fool", "The Magician", "The High Priestess", "The Empress", "The Emperor"}
	cards := make([]domain.TarotCard, len(names))
	for i, name := range names {
		cards[i] = domain.TarotCard{
			ID:             name,
			Name:           name,
			MeaningsLight:  domain.StringArray{"light of " + name},
			MeaningsShadow: domain.StringArray{"shadow of " + name},
		}
	}
	return cards
}

func newReadingFixture(store *fakeContextStore) *ReadingService {
	matcher := NewMatcherService(store, 100)
	enhancer := NewEnhancerService(matcher, 3)
	generator := NewReadingGenerator(nil) // disabled mode
	return NewReadingService(&fakeCardStore{deck: testCards()}, generator, enhancer, &stepRNG{values: []int{1, 0, 2}}, 3)
}

func TestAsk_ProducesFullReading(t *testing.T) {
	svc := newReadingFixture(&fakeContextStore{})

	reading, err := svc.Ask(context.Background(), "Will I find love?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reading.QuestionType != CategoryLoveRelationship {
		t.Errorf("expected love_relationship, got %q", reading.QuestionType)
	}
	if len(reading.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(reading.Cards))
	}
	if reading.Interpretation == "" {
		t.Error("expected a non-empty interpretation")
	}
	if reading.ConfidenceBoost != 0 {
		t.Errorf("expected zero boost against an empty store, got %v", reading.ConfidenceBoost)
	}

	seen := make(map[string]bool)
	for _, p := range reading.Cards {
		if seen[p.Name] {
			t.Errorf("card %q drawn twice", p.Name)
		}
		seen[p.Name] = true
	}
}

func TestDaily_SingleCard(t *testing.T) {
	svc := newReadingFixture(&fakeContextStore{})

	reading, err := svc.Daily(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reading.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(reading.Cards))
	}
	if reading.Cards[0].Position != "present" {
		t.Errorf("expected present position, got %q", reading.Cards[0].Position)
	}
	if reading.Interpretation == "" {
		t.Error("expected a non-empty interpretation")
	}
}

func TestAsk_DeckFetchFailureIsFatal(t *testing.T) {
	matcher := NewMatcherService(&fakeContextStore{}, 100)
	enhancer := NewEnhancerService(matcher, 3)
	svc := NewReadingService(&fakeCardStore{fail: true}, NewReadingGenerator(nil), enhancer, &stepRNG{}, 3)

	if _, err := svc.Ask(context.Background(), "anything"); err == nil {
		t.Fatal("expected error when the deck cannot be fetched")
	}
}

func TestGenerator_DisabledMode(t *testing.T) {
	g := NewReadingGenerator(nil)
	if g.IsEnabled() {
		t.Error("expected generator to be disabled without an API key")
	}

	text, err := g.Generate(context.Background(), "system", "Cards drawn:\n- The Fool (past, Upright)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text == "" {
		t.Error("expected placeholder text in disabled mode")
	}
}
