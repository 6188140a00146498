package service

import (
	"context"

	"github.com/divops/tarotai/internal/logger"
)

// FeedbackStats summarizes the learning corpus. Counts are computed in-core
// over a bounded fetch of recent records, so very old history falls outside
// the window.
type FeedbackStats struct {
	TotalFeedback   int            `json:"total_feedback"`
	AverageRating   float64        `json:"average_rating"`
	RatingCounts    map[int]int    `json:"rating_counts"`
	ContextsStored  int            `json:"contexts_stored"`
	KeywordsLearned int            `json:"keywords_learned"`
	ByCategory      map[string]int `json:"by_category"`
}

// Stats aggregates feedback, context, and keyword counts. Store failures
// degrade the affected section to zero rather than failing the whole call.
func (s *FeedbackService) Stats(ctx context.Context) FeedbackStats {
	stats := FeedbackStats{
		RatingCounts: make(map[int]int),
		ByCategory:   make(map[string]int),
	}

	records, err := s.feedback.ListRecent(ctx, s.scanLimit)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warnf("Feedback scan failed for stats")
	} else {
		sum := 0
		rated := 0
		for _, r := range records {
			stats.TotalFeedback++
			if r.Rating >= 1 && r.Rating <= 5 {
				stats.RatingCounts[r.Rating]++
				sum += r.Rating
				rated++
			}
		}
		if rated > 0 {
			stats.AverageRating = float64(sum) / float64(rated)
		}
	}

	contexts, err := s.contexts.ListRecent(ctx, s.scanLimit)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warnf("Context scan failed for stats")
	} else {
		stats.ContextsStored = len(contexts)
		for _, c := range contexts {
			stats.ByCategory[c.QuestionType]++
		}
	}

	keywords, err := s.keywords.ListRecent(ctx, s.scanLimit)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warnf("Keyword scan failed for stats")
	} else {
		stats.KeywordsLearned = len(keywords)
	}

	return stats
}
