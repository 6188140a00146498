package service

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/divops/tarotai/internal/domain"
)

func newEnhancerFixture(store *fakeContextStore) *EnhancerService {
	return NewEnhancerService(NewMatcherService(store, 100), 3)
}

func TestEnhance_EmptyStoreReturnsBaseUnchanged(t *testing.T) {
	enhancer := newEnhancerFixture(&fakeContextStore{})

	base := "The Fool opens a new chapter."
	got := enhancer.Enhance(context.Background(), "Will I find love?", spread([2]string{"present", "The Fool"}), base)

	if got.Text != base {
		t.Errorf("expected base interpretation unchanged, got %q", got.Text)
	}
	if got.ConfidenceBoost != 0 {
		t.Errorf("expected zero boost, got %v", got.ConfidenceBoost)
	}
	if got.MatchCount != 0 {
		t.Errorf("expected zero matches, got %d", got.MatchCount)
	}
	if got.Insights == "" {
		t.Error("expected an explanatory insights string")
	}
}

func TestEnhance_WithMatchesAppendsBanner(t *testing.T) {
	current := spread([2]string{"past", "The Fool"}, [2]string{"present", "The Magician"}, [2]string{"future", "The Empress"})

	rc := storedContext("past love reading", CategoryLoveRelationship, 5, current)
	rc.UserFeedback = "This resonated deeply and gave me real clarity"
	store := &fakeContextStore{records: []domain.ReadingContext{rc}}

	enhancer := newEnhancerFixture(store)
	base := "The cards speak of beginnings."
	got := enhancer.Enhance(context.Background(), "Will I find love?", current, base)

	if !strings.HasPrefix(got.Text, base) {
		t.Error("enhanced text must start with the base interpretation")
	}
	if !strings.Contains(got.Text, "--- Context Enhancement ---") {
		t.Error("expected the context enhancement banner")
	}
	if !strings.Contains(got.Insights, "resonated deeply") {
		t.Errorf("expected the feedback snippet quoted, got %q", got.Insights)
	}
	if got.MatchCount != 1 {
		t.Errorf("expected 1 match, got %d", got.MatchCount)
	}

	// Identical spread, rating 5: (5/5 * 1.0) * 1.2 capped at 1.0.
	if got.ConfidenceBoost != 1.0 {
		t.Errorf("expected boost 1.0, got %v", got.ConfidenceBoost)
	}

	// The Fool sat in the past position with a high rating, so a card note
	// naming it and its themes must appear.
	if !strings.Contains(got.Insights, "The Fool in the past position") {
		t.Errorf("expected a card note for The Fool, got %q", got.Insights)
	}
	if !strings.Contains(got.Insights, "resonance") || !strings.Contains(got.Insights, "guidance") {
		t.Errorf("expected themes extracted from the feedback, got %q", got.Insights)
	}
}

func TestEnhance_Idempotent(t *testing.T) {
	current := spread([2]string{"past", "The Fool"}, [2]string{"present", "The Magician"}, [2]string{"future", "The Empress"})
	rc := storedContext("stored", CategoryGeneral, 4, current)
	rc.UserFeedback = "accurate and helpful"
	store := &fakeContextStore{records: []domain.ReadingContext{rc}}

	enhancer := newEnhancerFixture(store)
	first := enhancer.Enhance(context.Background(), "tell me more", current, "base text")
	second := enhancer.Enhance(context.Background(), "tell me more", current, "base text")

	if first.Text != second.Text || first.ConfidenceBoost != second.ConfidenceBoost || first.MatchCount != second.MatchCount {
		t.Error("enhancement with identical inputs and store must be deterministic")
	}
}

func TestEnhance_BoostComputation(t *testing.T) {
	// One loose-only match: score 0.3/3 = 0.1, rating 4.
	current := spread([2]string{"past", "The Fool"}, [2]string{"present", "The Magician"}, [2]string{"future", "The Empress"})
	stored := spread([2]string{"past", "The Magician"}, [2]string{"present", "The Tower"}, [2]string{"future", "The Star"})

	rc := storedContext("loose", CategoryGeneral, 4, stored)
	store := &fakeContextStore{records: []domain.ReadingContext{rc}}

	enhancer := newEnhancerFixture(store)
	got := enhancer.Enhance(context.Background(), "tell me", current, "base")

	// (4/5 * 0.1) * 1.2 = 0.096, rounded to 0.1.
	want := 0.1
	if math.Abs(got.ConfidenceBoost-want) > 1e-9 {
		t.Errorf("expected boost %v, got %v", want, got.ConfidenceBoost)
	}
}

func TestEnhance_LimitsQuotedSnippets(t *testing.T) {
	current := spread([2]string{"past", "The Fool"}, [2]string{"present", "The Magician"}, [2]string{"future", "The Empress"})

	store := &fakeContextStore{}
	for i := 0; i < 3; i++ {
		rc := storedContext("stored", CategoryGeneral, 5, current)
		rc.UserFeedback = "so accurate it startled me"
		store.records = append(store.records, rc)
	}

	enhancer := newEnhancerFixture(store)
	got := enhancer.Enhance(context.Background(), "tell me", current, "base")

	if n := strings.Count(got.Insights, "A seeker with a similar spread shared"); n > 2 {
		t.Errorf("expected at most 2 quoted snippets, got %d", n)
	}
}

func TestEnhance_TruncatesLongSnippets(t *testing.T) {
	current := spread([2]string{"past", "The Fool"}, [2]string{"present", "The Magician"}, [2]string{"future", "The Empress"})

	rc := storedContext("stored", CategoryGeneral, 5, current)
	rc.UserFeedback = strings.Repeat("x", 150)
	store := &fakeContextStore{records: []domain.ReadingContext{rc}}

	enhancer := newEnhancerFixture(store)
	got := enhancer.Enhance(context.Background(), "tell me", current, "base")

	if !strings.Contains(got.Insights, strings.Repeat("x", 100)+"...") {
		t.Error("expected long snippet truncated with ellipsis")
	}
	if strings.Contains(got.Insights, strings.Repeat("x", 101)) {
		t.Error("snippet exceeds the truncation limit")
	}
}
