package handler

import (
	"errors"
	"net/http"

	"github.com/divops/tarotai/internal/domain"
	"github.com/divops/tarotai/internal/service"
	"github.com/gin-gonic/gin"
)

// DiscussionHandler handles discussion session endpoints.
type DiscussionHandler struct {
	discussions *service.DiscussionService
}

// NewDiscussionHandler creates a new discussion handler.
func NewDiscussionHandler(discussions *service.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussions: discussions}
}

// StartRequest is the request body for opening a discussion.
type StartRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Topic    string `json:"topic"`
	Question string `json:"question" binding:"required"`
}

// Start opens a new discussion: draws a spread, generates the initial
// reading, and returns both session and reading.
func (h *DiscussionHandler) Start(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and question are required"})
		return
	}

	discussion, reading, err := h.discussions.Start(c.Request.Context(), req.UserID, req.Topic, req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start discussion"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"discussion": discussion,
		"reading":    reading,
	})
}

// FollowupRequest is the request body for a followup question.
type FollowupRequest struct {
	Question string `json:"question" binding:"required"`
}

// Followup answers a new question against the discussion's original spread.
func (h *DiscussionHandler) Followup(c *gin.Context) {
	var req FollowupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	followup, err := h.discussions.Followup(c.Request.Context(), c.Param("id"), req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrDiscussionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "discussion not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer followup"})
		return
	}
	c.JSON(http.StatusOK, followup)
}

// Get returns one discussion with its followup history.
func (h *DiscussionHandler) Get(c *gin.Context) {
	id := c.Param("id")
	discussion, err := h.discussions.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDiscussionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "discussion not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load discussion"})
		return
	}

	history, err := h.discussions.History(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load discussion history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"discussion": discussion,
		"followups":  history,
	})
}

// List returns discussions, optionally filtered by user_id.
func (h *DiscussionHandler) List(c *gin.Context) {
	discussions, err := h.discussions.ListForUser(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list discussions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"discussions": discussions,
		"count":       len(discussions),
	})
}
