package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/divops/tarotai/internal/domain"
	"github.com/divops/tarotai/internal/logger"
)

const (
	// enhancementBanner marks an interpretation that received context
	// enhancement. Downstream callers detect enhancement by its presence.
	enhancementBanner = "--- Context Enhancement ---"

	// maxInsightSnippets bounds how many feedback quotes appear verbatim.
	maxInsightSnippets = 2
	snippetLimit       = 100

	confidenceMultiplier = 1.2
)

// EnhancedReading is the result of combining a base interpretation with
// similar past readings.
type EnhancedReading struct {
	Text            string  `json:"text"`
	Insights        string  `json:"insights"`
	ConfidenceBoost float64 `json:"confidence_boost"`
	MatchCount      int     `json:"match_count"`
}

// EnhancerService layers insight from similar well-rated past readings on
// top of an externally generated base interpretation.
type EnhancerService struct {
	matcher *MatcherService
	limit   int
}

// NewEnhancerService creates an enhancer over the given matcher. limit
// bounds how many similar contexts one enhancement considers.
func NewEnhancerService(matcher *MatcherService, limit int) *EnhancerService {
	if limit <= 0 || limit > DefaultSimilarLimit {
		limit = DefaultSimilarLimit
	}
	return &EnhancerService{matcher: matcher, limit: limit}
}

// Enhance combines the base interpretation with insights drawn from similar
// stored contexts. It can never break the primary reading flow: any failure
// degrades to the unmodified base interpretation with a zero boost.
func (s *EnhancerService) Enhance(ctx context.Context, question string, layout domain.Layout, base string) (result EnhancedReading) {
	result = EnhancedReading{
		Text:     base,
		Insights: "No similar past readings found yet.",
	}
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Errorf("Enhancement panicked, returning base interpretation: %v", r)
			result = EnhancedReading{
				Text:     base,
				Insights: "No similar past readings found yet.",
			}
		}
	}()

	matches := s.matcher.FindSimilar(ctx, question, layout, s.limit)
	if len(matches) == 0 {
		return result
	}

	insights := buildInsights(layout, matches)
	result = EnhancedReading{
		Text:            base + "\n\n" + enhancementBanner + "\n" + insights,
		Insights:        insights,
		ConfidenceBoost: confidenceBoost(matches),
		MatchCount:      len(matches),
	}
	return result
}

// buildInsights renders the insights section: up to two quotes from
// high-rated matches, then per-position card notes themed from the
// accumulated positive feedback for that card in that position.
func buildInsights(layout domain.Layout, matches []domain.ScoredContext) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Drawing on %d similar past reading(s):\n", len(matches)))

	quoted := 0
	for _, m := range matches {
		if quoted >= maxInsightSnippets {
			break
		}
		if m.Rating < domain.HighRatingThreshold || m.UserFeedback == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("- A seeker with a similar spread shared: %q\n", truncate(m.UserFeedback, snippetLimit)))
		quoted++
	}

	for _, p := range layout {
		var texts []string
		for _, m := range matches {
			if m.Rating < domain.HighRatingThreshold {
				continue
			}
			for _, entry := range m.Spread {
				if entry.CardName == p.Name && entry.Position == p.Position {
					if m.UserFeedback != "" {
						texts = append(texts, m.UserFeedback)
					} else {
						texts = append(texts, m.ModelResponse)
					}
				}
			}
		}
		if len(texts) == 0 {
			continue
		}
		themes := ExtractThemes(texts)
		if len(themes) == 0 {
			themes = []string{DefaultTheme}
		}
		b.WriteString(fmt.Sprintf("- %s in the %s position has previously brought %s.\n", p.Name, p.Position, strings.Join(themes, ", ")))
	}

	return strings.TrimRight(b.String(), "\n")
}

// confidenceBoost averages (rating/5 * similarity) across matches, scales it,
// and caps the result at 1.0 rounded to two decimals.
func confidenceBoost(matches []domain.ScoredContext) float64 {
	if len(matches) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range matches {
		sum += (float64(m.Rating) / 5.0) * m.SimilarityScore
	}
	boost := sum / float64(len(matches)) * confidenceMultiplier
	if boost > 1.0 {
		boost = 1.0
	}
	return math.Round(boost*100) / 100
}
