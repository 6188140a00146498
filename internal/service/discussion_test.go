package service

import (
	"context"
	"errors"
	"testing"

	"github.com/divops/tarotai/internal/domain"
)

type fakeDiscussionStore struct {
	discussions []domain.Discussion
	followups   []domain.FollowupQuestion
}

func (f *fakeDiscussionStore) Insert(_ context.Context, d *domain.Discussion) error {
	f.discussions = append(f.discussions, *d)
	return nil
}

func (f *fakeDiscussionStore) ListRecent(_ context.Context, limit int) ([]domain.Discussion, error) {
	out := append([]domain.Discussion(nil), f.discussions...)
	// Newest first, as the repository returns them.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDiscussionStore) InsertFollowup(_ context.Context, fq *domain.FollowupQuestion) error {
	f.followups = append(f.followups, *fq)
	return nil
}

func (f *fakeDiscussionStore) ListRecentFollowups(_ context.Context, limit int) ([]domain.FollowupQuestion, error) {
	out := append([]domain.FollowupQuestion(nil), f.followups...)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newDiscussionFixture() (*DiscussionService, *fakeDiscussionStore) {
	store := &fakeDiscussionStore{}
	readings := newReadingFixture(&fakeContextStore{})
	svc := NewDiscussionService(store, readings, NewReadingGenerator(nil), 100)
	return svc, store
}

func TestStart_PersistsSessionWithSpread(t *testing.T) {
	svc, store := newDiscussionFixture()

	discussion, reading, err := svc.Start(context.Background(), "user-1", "romance", "Will I find love?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.discussions) != 1 {
		t.Fatalf("expected 1 stored discussion, got %d", len(store.discussions))
	}
	if discussion.InitialResponse != reading.Interpretation {
		t.Error("stored response must match the generated reading")
	}

	layout, err := discussion.DecodeLayout()
	if err != nil {
		t.Fatalf("stored spread does not decode: %v", err)
	}
	if len(layout) != len(reading.Cards) {
		t.Errorf("expected %d stored placements, got %d", len(reading.Cards), len(layout))
	}
}

func TestFollowup_UnknownDiscussion(t *testing.T) {
	svc, _ := newDiscussionFixture()

	_, err := svc.Followup(context.Background(), "no-such-id", "What next?")
	if !errors.Is(err, domain.ErrDiscussionNotFound) {
		t.Errorf("expected ErrDiscussionNotFound, got %v", err)
	}
}

func TestFollowup_AnswersAgainstOriginalSpread(t *testing.T) {
	svc, store := newDiscussionFixture()

	discussion, _, err := svc.Start(context.Background(), "user-1", "", "Will I find love?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	followup, err := svc.Followup(context.Background(), discussion.ID, "What about timing?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if followup.DiscussionID != discussion.ID {
		t.Errorf("followup bound to wrong discussion: %q", followup.DiscussionID)
	}
	if followup.Response == "" {
		t.Error("expected a non-empty followup response")
	}
	if len(store.followups) != 1 {
		t.Errorf("expected 1 stored followup, got %d", len(store.followups))
	}
}

func TestHistory_ChronologicalOrder(t *testing.T) {
	svc, _ := newDiscussionFixture()

	discussion, _, err := svc.Start(context.Background(), "user-1", "", "Will I find love?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	questions := []string{"first?", "second?", "third?"}
	for _, q := range questions {
		if _, err := svc.Followup(context.Background(), discussion.ID, q); err != nil {
			t.Fatalf("followup %q failed: %v", q, err)
		}
	}

	history, err := svc.History(context.Background(), discussion.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != len(questions) {
		t.Fatalf("expected %d followups, got %d", len(questions), len(history))
	}
	for i, q := range questions {
		if history[i].Question != q {
			t.Errorf("history[%d] = %q, want %q", i, history[i].Question, q)
		}
	}
}

func TestListForUser_Filters(t *testing.T) {
	svc, _ := newDiscussionFixture()

	if _, _, err := svc.Start(context.Background(), "user-1", "", "question one"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.Start(context.Background(), "user-2", "", "question two"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mine, err := svc.ListForUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != "user-1" {
		t.Errorf("expected only user-1 discussions, got %+v", mine)
	}

	all, err := svc.ListForUser(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 discussions without a filter, got %d", len(all))
	}
}
