package service

import (
	"context"
	"errors"
	"sync"

	"github.com/divops/tarotai/internal/domain"
)

var errStoreDown = errors.New("store unavailable")

// fakeContextStore is an in-memory ContextStore. Records are returned in
// insertion order; the bounded fetch truncates from the front.
type fakeContextStore struct {
	mu         sync.Mutex
	records    []domain.ReadingContext
	failList   bool
	failInsert bool
}

func (f *fakeContextStore) Insert(_ context.Context, rc *domain.ReadingContext) error {
	if f.failInsert {
		return errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *rc)
	return nil
}

func (f *fakeContextStore) ListRecent(_ context.Context, limit int) ([]domain.ReadingContext, error) {
	if f.failList {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.records) > limit {
		return append([]domain.ReadingContext(nil), f.records[:limit]...), nil
	}
	return append([]domain.ReadingContext(nil), f.records...), nil
}

type fakeFeedbackStore struct {
	mu         sync.Mutex
	records    []domain.FeedbackRecord
	failInsert bool
}

func (f *fakeFeedbackStore) Insert(_ context.Context, r *domain.FeedbackRecord) error {
	if f.failInsert {
		return errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeFeedbackStore) ListRecent(_ context.Context, limit int) ([]domain.FeedbackRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.records) > limit {
		return append([]domain.FeedbackRecord(nil), f.records[:limit]...), nil
	}
	return append([]domain.FeedbackRecord(nil), f.records...), nil
}

type fakeKeywordStore struct {
	mu         sync.Mutex
	records    []domain.KeywordMeaning
	failInsert bool
}

func (f *fakeKeywordStore) Insert(_ context.Context, km *domain.KeywordMeaning) error {
	if f.failInsert {
		return errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *km)
	return nil
}

func (f *fakeKeywordStore) Save(_ context.Context, km *domain.KeywordMeaning) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == km.ID {
			f.records[i] = *km
			return nil
		}
	}
	f.records = append(f.records, *km)
	return nil
}

func (f *fakeKeywordStore) ListRecent(_ context.Context, limit int) ([]domain.KeywordMeaning, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.records) > limit {
		return append([]domain.KeywordMeaning(nil), f.records[:limit]...), nil
	}
	return append([]domain.KeywordMeaning(nil), f.records...), nil
}

func (f *fakeKeywordStore) byKeyword(keyword string) []domain.KeywordMeaning {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.KeywordMeaning
	for _, km := range f.records {
		if km.Keyword == keyword {
			result = append(result, km)
		}
	}
	return result
}

// mustEncode panics on encode failure; test data is always encodable.
func mustEncode(layout domain.Layout) string {
	s, err := domain.EncodeSpread(layout)
	if err != nil {
		panic(err)
	}
	return s
}

// spread builds an upright layout from (position, card) pairs with the
// position's fixed keywords attached.
func spread(pairs ...[2]string) domain.Layout {
	layout := make(domain.Layout, len(pairs))
	for i, pc := range pairs {
		layout[i] = domain.CardPlacement{
			Name:             pc[1],
			Position:         pc[0],
			Orientation:      domain.Upright,
			Meaning:          "meaning of " + pc[1],
			PositionKeywords: domain.PositionKeywords[pc[0]],
		}
	}
	return layout
}
