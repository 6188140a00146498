package service

import (
	"context"
	"fmt"
	"time"

	"github.com/divops/tarotai/internal/domain"
	"github.com/divops/tarotai/internal/logger"
	"github.com/google/uuid"
)

const (
	// feedbackTextLimit caps how much free text flows into derived meanings.
	feedbackTextLimit = 100
	// noCommentSnippet stands in when a rating arrives without text.
	noCommentSnippet = "No additional comment"
)

// FeedbackResult reports what a feedback submission produced. Partial
// success is normal: a caller can detect degraded learning from the counts
// without treating it as a hard failure.
type FeedbackResult struct {
	Status          string `json:"status"`
	KeywordsUpdated int    `json:"keywords_updated"`
	ContextsStored  int    `json:"contexts_stored"`
}

// FeedbackService turns accumulated user ratings into the context corpus
// and the keyword meaning dictionary that future readings draw on.
type FeedbackService struct {
	feedback  FeedbackStore
	contexts  ContextStore
	keywords  KeywordStore
	scanLimit int
}

// NewFeedbackService creates a feedback processor over the given stores.
func NewFeedbackService(feedback FeedbackStore, contexts ContextStore, keywords KeywordStore, scanLimit int) *FeedbackService {
	if scanLimit <= 0 {
		scanLimit = 1000
	}
	return &FeedbackService{
		feedback:  feedback,
		contexts:  contexts,
		keywords:  keywords,
		scanLimit: scanLimit,
	}
}

// Process handles one feedback submission.
//
// The raw submission is always written to the audit trail; that write
// failing is the only error this method surfaces. When the rating meets the
// high-rating threshold, it additionally stores a ReadingContext and updates
// a KeywordMeaning for every position keyword in the spread. Learning-step
// failures are logged and reflected in the counts but never revert the
// audit write. There is no transaction across the two steps.
func (s *FeedbackService) Process(ctx context.Context, sub domain.FeedbackSubmission) (FeedbackResult, error) {
	start := time.Now()

	cardsDrawn, err := domain.EncodeSpread(sub.Spread)
	if err != nil {
		return FeedbackResult{Status: "error"}, fmt.Errorf("failed to encode spread: %w", err)
	}

	audit := &domain.FeedbackRecord{
		ID:           uuid.NewString(),
		UserID:       sub.UserID,
		Question:     sub.Question,
		Response:     sub.Response,
		FeedbackText: sub.FeedbackText,
		Rating:       sub.Rating,
		DiscussionID: sub.DiscussionID,
		CardsDrawn:   cardsDrawn,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.feedback.Insert(ctx, audit); err != nil {
		return FeedbackResult{Status: "error"}, fmt.Errorf("failed to record feedback: %w", err)
	}

	result := FeedbackResult{Status: "recorded"}
	if !sub.Qualifies() {
		return result, nil
	}

	if err := s.storeContext(ctx, sub, cardsDrawn); err != nil {
		logger.FromContext(ctx).WithError(err).Warnf("Failed to store reading context")
	} else {
		result.ContextsStored = 1
	}

	result.KeywordsUpdated = s.updateKeywords(ctx, sub)
	result.Status = "learned"

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		"keywords_updated":     result.KeywordsUpdated,
		"contexts_stored":      result.ContextsStored,
		"rating":               sub.Rating,
	}).Info(ctx, "Feedback processed")

	return result, nil
}

// storeContext persists one ReadingContext derived from a qualifying
// submission. The question category is computed once, at write time.
func (s *FeedbackService) storeContext(ctx context.Context, sub domain.FeedbackSubmission, cardsDrawn string) error {
	rc := &domain.ReadingContext{
		ID:            uuid.NewString(),
		Question:      sub.Question,
		ModelResponse: sub.Response,
		UserFeedback:  sub.FeedbackText,
		Rating:        sub.Rating,
		UserID:        sub.UserID,
		DiscussionID:  sub.DiscussionID,
		SpreadInfo:    cardsDrawn,
		TotalCards:    len(sub.Spread),
		QuestionType:  ClassifyQuestion(sub.Question),
		Source:        domain.KeywordMeaningSourceFeedback,
		CreatedAt:     time.Now().UTC(),
	}
	return s.contexts.Insert(ctx, rc)
}

// updateKeywords runs the per-placement, per-position-keyword learning step
// and returns how many keywords were written successfully.
//
// Lookup-then-write here is deliberately not atomic. Two concurrent
// qualifying submissions naming the same new keyword can create duplicate
// records or lose an appended snippet; the corpus tolerates both.
func (s *FeedbackService) updateKeywords(ctx context.Context, sub domain.FeedbackSubmission) int {
	existing, err := s.keywords.ListRecent(ctx, s.scanLimit)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warnf("Keyword scan failed, skipping keyword learning")
		return 0
	}
	byKeyword := make(map[string]*domain.KeywordMeaning, len(existing))
	for i := range existing {
		if _, ok := byKeyword[existing[i].Keyword]; !ok {
			byKeyword[existing[i].Keyword] = &existing[i]
		}
	}

	meaning := deriveMeaning(sub.FeedbackText, sub.Question)
	snippet := feedbackSnippet(sub.Rating, sub.FeedbackText)

	updated := 0
	for i, placement := range sub.Spread {
		for _, keyword := range placement.PositionKeywords {
			if km, ok := byKeyword[keyword]; ok {
				km.Feedback = append(km.Feedback, snippet)
				km.UpdatedAt = time.Now().UTC()
				if err := s.keywords.Save(ctx, km); err != nil {
					logger.FromContext(ctx).WithError(err).Warnf("Failed to update keyword %q", keyword)
					continue
				}
				updated++
				continue
			}
			km := &domain.KeywordMeaning{
				ID:          uuid.NewString(),
				Keyword:     keyword,
				Meaning:     meaning,
				Feedback:    domain.StringArray{snippet},
				Source:      domain.KeywordMeaningSourceFeedback,
				Orientation: placement.Orientation,
				Position:    i,
				CardName:    placement.Name,
				CreatedAt:   time.Now().UTC(),
				UpdatedAt:   time.Now().UTC(),
			}
			if err := s.keywords.Insert(ctx, km); err != nil {
				logger.FromContext(ctx).WithError(err).Warnf("Failed to create keyword %q", keyword)
				continue
			}
			byKeyword[keyword] = km
			updated++
		}
	}
	return updated
}

// ListForDiscussion returns the audit records for one discussion, filtered
// in-core over a bounded fetch.
func (s *FeedbackService) ListForDiscussion(ctx context.Context, discussionID string) ([]domain.FeedbackRecord, error) {
	records, err := s.feedback.ListRecent(ctx, s.scanLimit)
	if err != nil {
		return nil, err
	}
	var result []domain.FeedbackRecord
	for _, r := range records {
		if r.DiscussionID == discussionID {
			result = append(result, r)
		}
	}
	return result, nil
}

// deriveMeaning builds the stored meaning string from the user's own words
// when present, falling back to a reference to the question.
func deriveMeaning(feedbackText, question string) string {
	if feedbackText != "" {
		runes := []rune(feedbackText)
		if len(runes) > feedbackTextLimit {
			runes = runes[:feedbackTextLimit]
		}
		return fmt.Sprintf("User context: %s...", string(runes))
	}
	return fmt.Sprintf("Positive association from question: %s", question)
}

// feedbackSnippet renders the snippet appended to a keyword's feedback list.
func feedbackSnippet(rating int, text string) string {
	if text == "" {
		text = noCommentSnippet
	}
	return fmt.Sprintf("User rated %d/5: %s", rating, text)
}

// truncate shortens s to at most n characters, marking the cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
