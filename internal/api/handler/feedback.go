package handler

import (
	"errors"
	"net/http"

	"github.com/divops/tarotai/internal/domain"
	"github.com/divops/tarotai/internal/service"
	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles feedback submission and statistics endpoints.
// Rating bounds are enforced here, in the validation layer, before any
// submission reaches feedback processing.
type FeedbackHandler struct {
	feedback    *service.FeedbackService
	discussions *service.DiscussionService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedback *service.FeedbackService, discussions *service.DiscussionService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, discussions: discussions}
}

// SubmitRequest is the request body for rating a discussion's reading.
type SubmitRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	FeedbackText string `json:"feedback_text"`
}

// Submit records feedback on a discussion's initial reading and triggers
// learning when the rating qualifies.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and a rating between 1 and 5 are required"})
		return
	}

	discussionID := c.Param("id")
	discussion, err := h.discussions.Get(c.Request.Context(), discussionID)
	if err != nil {
		if errors.Is(err, domain.ErrDiscussionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "discussion not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load discussion"})
		return
	}

	layout, err := discussion.DecodeLayout()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored spread is unreadable"})
		return
	}

	result, err := h.feedback.Process(c.Request.Context(), domain.FeedbackSubmission{
		UserID:       req.UserID,
		Question:     discussion.InitialQuestion,
		Spread:       layout,
		Response:     discussion.InitialResponse,
		FeedbackText: req.FeedbackText,
		Rating:       req.Rating,
		HasRating:    true,
		DiscussionID: discussionID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record feedback"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListForDiscussion returns the feedback audit trail for one discussion.
func (h *FeedbackHandler) ListForDiscussion(c *gin.Context) {
	records, err := h.feedback.ListForDiscussion(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feedback"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"feedback": records,
		"count":    len(records),
	})
}

// Stats returns aggregate learning statistics.
func (h *FeedbackHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.feedback.Stats(c.Request.Context()))
}
