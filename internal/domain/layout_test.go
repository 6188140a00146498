package domain

import (
	"errors"
	"testing"
)

// seqRNG returns pre-programmed values, cycling when exhausted.
type seqRNG struct {
	values []int
	idx    int
}

func (r *seqRNG) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func testDeck(n int) []TarotCard {
	names := []string{"The Fool", "The Magician", "The High Priestess", "The Empress", "The Emperor"}
	deck := make([]TarotCard, n)
	for i := 0; i < n; i++ {
		deck[i] = TarotCard{
			ID:             names[i%len(names)],
			Name:           names[i%len(names)],
			MeaningsLight:  StringArray{"light-" + names[i%len(names)]},
			MeaningsShadow: StringArray{"shadow-" + names[i%len(names)]},
		}
	}
	return deck
}

func TestGenerateLayout_ThreeCardSpread(t *testing.T) {
	deck := testDeck(5)
	layout, err := GenerateLayout(deck, 3, &seqRNG{values: []int{0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(layout) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(layout))
	}

	wantPositions := []string{"past", "present", "future"}
	seen := make(map[string]bool)
	for i, p := range layout {
		if p.Position != wantPositions[i] {
			t.Errorf("placement %d: expected position %q, got %q", i, wantPositions[i], p.Position)
		}
		if seen[p.Name] {
			t.Errorf("card %q drawn twice", p.Name)
		}
		seen[p.Name] = true
		if p.Orientation != Upright && p.Orientation != Reversed {
			t.Errorf("placement %d: invalid orientation %q", i, p.Orientation)
		}
	}
}

func TestGenerateLayout_MeaningFollowsOrientation(t *testing.T) {
	deck := testDeck(5)

	// Alternate coin flips so both orientations appear.
	layout, err := GenerateLayout(deck, 3, &seqRNG{values: []int{0, 1, 2, 0, 3, 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, p := range layout {
		want := "shadow-" + p.Name
		if p.Upright() {
			want = "light-" + p.Name
		}
		if p.Meaning != want {
			t.Errorf("placement %d: expected meaning %q, got %q", i, want, p.Meaning)
		}
	}
}

func TestGenerateLayout_PositionKeywords(t *testing.T) {
	layout, err := GenerateLayout(testDeck(5), 3, &seqRNG{values: []int{0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		position string
		first    string
		count    int
	}{
		{"past", "roots", 4},
		{"present", "focus", 4},
		{"future", "potential", 4},
	}
	for i, tt := range tests {
		kw := layout[i].PositionKeywords
		if len(kw) != tt.count {
			t.Errorf("%s: expected %d keywords, got %d", tt.position, tt.count, len(kw))
			continue
		}
		if kw[0] != tt.first {
			t.Errorf("%s: expected first keyword %q, got %q", tt.position, tt.first, kw[0])
		}
	}
}

func TestGenerateLayout_EmptyMeaningList(t *testing.T) {
	deck := []TarotCard{{Name: "Blank"}}
	layout, err := GenerateLayout(deck, 1, &seqRNG{values: []int{0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout[0].Meaning != "" {
		t.Errorf("expected empty meaning for card without meanings, got %q", layout[0].Meaning)
	}
}

func TestGenerateLayout_InsufficientDeck(t *testing.T) {
	_, err := GenerateLayout(testDeck(2), 3, &seqRNG{values: []int{0}})
	if !errors.Is(err, ErrInsufficientDeck) {
		t.Errorf("expected ErrInsufficientDeck, got %v", err)
	}
}

func TestGenerateLayout_UnknownSpreadSize(t *testing.T) {
	_, err := GenerateLayout(testDeck(5), 2, &seqRNG{values: []int{0}})
	if !errors.Is(err, ErrUnknownSpreadSize) {
		t.Errorf("expected ErrUnknownSpreadSize, got %v", err)
	}
}

func TestEncodeDecodeSpread(t *testing.T) {
	layout, err := GenerateLayout(testDeck(5), 3, &seqRNG{values: []int{1, 0, 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded, err := EncodeSpread(layout)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	rc := &ReadingContext{SpreadInfo: encoded}
	entries, err := rc.DecodeSpread()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(entries) != len(layout) {
		t.Fatalf("expected %d entries, got %d", len(layout), len(entries))
	}
	for i, e := range entries {
		if e.CardName != layout[i].Name || e.Position != layout[i].Position || e.Upright != layout[i].Upright() {
			t.Errorf("entry %d does not round-trip: %+v vs %+v", i, e, layout[i])
		}
	}
}

func TestDecodeSpread_Malformed(t *testing.T) {
	rc := &ReadingContext{SpreadInfo: "{not json"}
	if _, err := rc.DecodeSpread(); err == nil {
		t.Error("expected error for malformed spread")
	}
}
