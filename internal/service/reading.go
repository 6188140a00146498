package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/divops/tarotai/internal/domain"
	"github.com/divops/tarotai/internal/logger"
	"github.com/divops/tarotai/internal/prompts"
	"github.com/google/uuid"
)

// systemRNG adapts the global math/rand source, which is safe for
// concurrent use, to the draw interface.
type systemRNG struct{}

func (systemRNG) Intn(n int) int { return rand.Intn(n) }

// NewSystemRNG returns the process-wide random source for card draws.
func NewSystemRNG() domain.RNG { return systemRNG{} }

// ReadingResponse is one complete reading delivered to a caller.
type ReadingResponse struct {
	ID              string        `json:"id"`
	Question        string        `json:"question,omitempty"`
	QuestionType    string        `json:"question_type,omitempty"`
	Cards           domain.Layout `json:"cards"`
	Interpretation  string        `json:"interpretation"`
	Insights        string        `json:"insights,omitempty"`
	ConfidenceBoost float64       `json:"confidence_boost"`
	MatchCount      int           `json:"match_count"`
	CreatedAt       time.Time     `json:"created_at"`
}

// ReadingService draws spreads and produces interpretations, layering
// context enhancement on top of the generated base text.
type ReadingService struct {
	cards      CardStore
	generator  *ReadingGenerator
	enhancer   *EnhancerService
	rng        domain.RNG
	spreadSize int
}

// NewReadingService creates a reading service.
func NewReadingService(cards CardStore, generator *ReadingGenerator, enhancer *EnhancerService, rng domain.RNG, spreadSize int) *ReadingService {
	if spreadSize <= 0 {
		spreadSize = 3
	}
	return &ReadingService{
		cards:      cards,
		generator:  generator,
		enhancer:   enhancer,
		rng:        rng,
		spreadSize: spreadSize,
	}
}

// Draw fetches the deck and draws a spread of the given size.
func (s *ReadingService) Draw(ctx context.Context, count int) (domain.Layout, error) {
	deck, err := s.cards.FetchDeck(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GenerateLayout(deck, count, s.rng)
}

// Daily draws a single card and returns a short reflection for it.
func (s *ReadingService) Daily(ctx context.Context) (*ReadingResponse, error) {
	layout, err := s.Draw(ctx, 1)
	if err != nil {
		return nil, err
	}

	text, err := s.generator.Generate(ctx, prompts.DailySystemPrompt, prompts.BuildDailyPrompt(layout[0]))
	if err != nil {
		return nil, err
	}

	return &ReadingResponse{
		ID:             uuid.NewString(),
		Cards:          layout,
		Interpretation: text,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// Ask draws a full spread for a question, generates a base interpretation,
// and enhances it with similar past readings. A generation failure is fatal
// to the reading; an enhancement failure is not.
func (s *ReadingService) Ask(ctx context.Context, question string) (*ReadingResponse, error) {
	start := time.Now()

	layout, err := s.Draw(ctx, s.spreadSize)
	if err != nil {
		return nil, err
	}

	questionType := ClassifyQuestion(question)
	base, err := s.generator.Generate(ctx, prompts.ReaderSystemPrompt, prompts.BuildReadingPrompt(question, questionType, layout))
	if err != nil {
		return nil, err
	}

	enhanced := s.enhancer.Enhance(ctx, question, layout, base)

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldCount:      enhanced.MatchCount,
		"question_type":        questionType,
		"confidence_boost":     enhanced.ConfidenceBoost,
	}).Info(ctx, "Reading generated")

	return &ReadingResponse{
		ID:              uuid.NewString(),
		Question:        question,
		QuestionType:    questionType,
		Cards:           layout,
		Interpretation:  enhanced.Text,
		Insights:        enhanced.Insights,
		ConfidenceBoost: enhanced.ConfidenceBoost,
		MatchCount:      enhanced.MatchCount,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
