package handler

import (
	"net/http"

	"github.com/divops/tarotai/internal/domain"
	"github.com/divops/tarotai/internal/service"
	"github.com/gin-gonic/gin"
)

// ReadingHandler handles reading endpoints: daily draws, question readings,
// and standalone enhancement of an externally produced interpretation.
type ReadingHandler struct {
	readings *service.ReadingService
	enhancer *service.EnhancerService
}

// NewReadingHandler creates a new reading handler.
func NewReadingHandler(readings *service.ReadingService, enhancer *service.EnhancerService) *ReadingHandler {
	return &ReadingHandler{readings: readings, enhancer: enhancer}
}

// Daily returns a single-card daily reflection.
func (h *ReadingHandler) Daily(c *gin.Context) {
	reading, err := h.readings.Daily(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate daily reading"})
		return
	}
	c.JSON(http.StatusOK, reading)
}

// AskRequest is the request body for a question reading.
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask draws a spread for a question and returns the enhanced interpretation.
func (h *ReadingHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	reading, err := h.readings.Ask(c.Request.Context(), req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate reading"})
		return
	}
	c.JSON(http.StatusOK, reading)
}

// EnhanceRequest carries a question, an already-drawn spread, and a base
// interpretation to enhance with similar past readings.
type EnhanceRequest struct {
	Question           string               `json:"question" binding:"required"`
	Cards              []domain.SpreadEntry `json:"cards" binding:"required,min=1"`
	BaseInterpretation string               `json:"base_interpretation" binding:"required"`
}

// Enhance applies context enhancement to a caller-supplied interpretation.
func (h *ReadingHandler) Enhance(c *gin.Context) {
	var req EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question, cards and base_interpretation are required"})
		return
	}

	layout := make(domain.Layout, len(req.Cards))
	for i, e := range req.Cards {
		orientation := domain.Reversed
		if e.Upright {
			orientation = domain.Upright
		}
		layout[i] = domain.CardPlacement{
			Name:             e.CardName,
			Position:         e.Position,
			Orientation:      orientation,
			Meaning:          e.Meaning,
			PositionKeywords: e.Keywords,
		}
	}

	result := h.enhancer.Enhance(c.Request.Context(), req.Question, layout, req.BaseInterpretation)
	c.JSON(http.StatusOK, result)
}
