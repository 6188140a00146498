package service

import (
	"context"
	"sort"
	"time"

	"github.com/divops/tarotai/internal/domain"
	"github.com/divops/tarotai/internal/logger"
)

const (
	// looseMatchWeight discounts card matches that land in a different position.
	looseMatchWeight = 0.3
	// baseSimilarityFloor keeps same-category records from scoring zero.
	baseSimilarityFloor = 0.1

	// DefaultSimilarLimit is how many contexts a match returns by default.
	DefaultSimilarLimit = 3
)

// MatcherService ranks stored reading contexts by similarity to the
// current question and spread.
type MatcherService struct {
	contexts  ContextStore
	scanLimit int
}

// NewMatcherService creates a matcher over the given context store.
// scanLimit bounds how many recent records a single match scans.
func NewMatcherService(contexts ContextStore, scanLimit int) *MatcherService {
	if scanLimit <= 0 {
		scanLimit = 1000
	}
	return &MatcherService{contexts: contexts, scanLimit: scanLimit}
}

// FindSimilar returns up to limit stored contexts in the same question
// category as the query, ranked by spread similarity.
//
// A storage-read failure yields an empty list, never an error: callers
// treat "no similar contexts" as a normal outcome. Records whose stored
// spread fails to parse are skipped individually.
func (s *MatcherService) FindSimilar(ctx context.Context, question string, current domain.Layout, limit int) []domain.ScoredContext {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	category := ClassifyQuestion(question)
	start := time.Now()

	records, err := s.contexts.ListRecent(ctx, s.scanLimit)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warnf("Context scan failed, returning no matches")
		return nil
	}

	var scored []domain.ScoredContext
	skipped := 0
	for i := range records {
		rc := records[i]
		if rc.QuestionType != category {
			continue
		}
		spread, err := rc.DecodeSpread()
		if err != nil {
			skipped++
			continue
		}
		scored = append(scored, domain.ScoredContext{
			ReadingContext:  rc,
			Spread:          spread,
			SimilarityScore: SpreadSimilarity(current, spread),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldCount:      len(scored),
		"category":             category,
		"scanned":              len(records),
		"skipped":              skipped,
	}).Debug(ctx, "Similarity match completed")

	return scored
}

// SpreadSimilarity scores how closely a stored spread resembles the current
// layout. Exact matches share position and card name; loose matches share
// only the card name. The result is always within [0, 1], with a small
// floor when both spreads are non-empty but share nothing.
func SpreadSimilarity(current domain.Layout, stored []domain.SpreadEntry) float64 {
	total := len(current)
	if len(stored) > total {
		total = len(stored)
	}
	if total == 0 {
		return 0
	}

	exact := 0
	loose := 0
	for _, p := range current {
		exactHit := false
		looseHit := false
		for _, s := range stored {
			if s.CardName != p.Name {
				continue
			}
			if s.Position == p.Position {
				exactHit = true
				break
			}
			looseHit = true
		}
		if exactHit {
			exact++
		} else if looseHit {
			loose++
		}
	}

	score := float64(exact)/float64(total) + looseMatchWeight*float64(loose)/float64(total)
	if score > 1.0 {
		score = 1.0
	}
	if score == 0 && len(current) > 0 && len(stored) > 0 {
		score = baseSimilarityFloor
	}
	return score
}
