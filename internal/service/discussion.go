package service

import (
	"context"
	"time"

	"github.com/divops/tarotai/internal/domain"
	"github.com/divops/tarotai/internal/logger"
	"github.com/divops/tarotai/internal/prompts"
	"github.com/google/uuid"
)

// DiscussionService manages reading sessions: the initial draw and reading,
// followup questions against the same spread, and session listing.
//
// All per-user and per-discussion filtering happens in-core over bounded
// fetches, matching the record-store contract.
type DiscussionService struct {
	discussions DiscussionStore
	readings    *ReadingService
	generator   *ReadingGenerator
	scanLimit   int
}

// NewDiscussionService creates a discussion service.
func NewDiscussionService(discussions DiscussionStore, readings *ReadingService, generator *ReadingGenerator, scanLimit int) *DiscussionService {
	if scanLimit <= 0 {
		scanLimit = 1000
	}
	return &DiscussionService{
		discussions: discussions,
		readings:    readings,
		generator:   generator,
		scanLimit:   scanLimit,
	}
}

// Start opens a new discussion: draws a spread for the question, generates
// the enhanced initial reading, and persists the session.
func (s *DiscussionService) Start(ctx context.Context, userID, topic, question string) (*domain.Discussion, *ReadingResponse, error) {
	reading, err := s.readings.Ask(ctx, question)
	if err != nil {
		return nil, nil, err
	}

	cardsDrawn, err := domain.EncodeSpread(reading.Cards)
	if err != nil {
		return nil, nil, err
	}

	d := &domain.Discussion{
		ID:              uuid.NewString(),
		UserID:          userID,
		Topic:           topic,
		InitialQuestion: question,
		InitialResponse: reading.Interpretation,
		CardsDrawn:      cardsDrawn,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.discussions.Insert(ctx, d); err != nil {
		return nil, nil, err
	}

	logger.FromContext(ctx).WithField(logger.FieldDiscussionID, d.ID).Infof("Discussion started")
	return d, reading, nil
}

// Get returns one discussion by id, scanning recent records in-core.
func (s *DiscussionService) Get(ctx context.Context, discussionID string) (*domain.Discussion, error) {
	all, err := s.discussions.ListRecent(ctx, s.scanLimit)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == discussionID {
			return &all[i], nil
		}
	}
	return nil, domain.ErrDiscussionNotFound
}

// ListForUser returns a user's discussions, newest first.
func (s *DiscussionService) ListForUser(ctx context.Context, userID string) ([]domain.Discussion, error) {
	all, err := s.discussions.ListRecent(ctx, s.scanLimit)
	if err != nil {
		return nil, err
	}
	var result []domain.Discussion
	for _, d := range all {
		if userID == "" || d.UserID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

// Followup answers a new question within an existing discussion. No new
// cards are drawn: the original spread is reinterpreted with the prior
// exchanges as history.
func (s *DiscussionService) Followup(ctx context.Context, discussionID, question string) (*domain.FollowupQuestion, error) {
	d, err := s.Get(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	layout, err := d.DecodeLayout()
	if err != nil {
		return nil, err
	}

	history, err := s.History(ctx, discussionID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warnf("Followup history unavailable, continuing without it")
		history = nil
	}

	response, err := s.generator.Generate(ctx, prompts.FollowupSystemPrompt,
		prompts.BuildFollowupPrompt(d.InitialQuestion, layout, history, question))
	if err != nil {
		return nil, err
	}

	f := &domain.FollowupQuestion{
		ID:           uuid.NewString(),
		DiscussionID: discussionID,
		Question:     question,
		Response:     response,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.discussions.InsertFollowup(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// History returns a discussion's followups in chronological order.
func (s *DiscussionService) History(ctx context.Context, discussionID string) ([]domain.FollowupQuestion, error) {
	recent, err := s.discussions.ListRecentFollowups(ctx, s.scanLimit)
	if err != nil {
		return nil, err
	}
	var history []domain.FollowupQuestion
	for _, f := range recent {
		if f.DiscussionID == discussionID {
			history = append(history, f)
		}
	}
	// ListRecentFollowups returns newest first; reverse to chronological.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}
