package domain

import "time"

// HighRatingThreshold is the rating at or above which feedback triggers
// learning writes (context storage and keyword meaning updates).
const HighRatingThreshold = 4

// FeedbackSubmission is the ephemeral input to feedback processing. It is
// never re-read; only the records it triggers are.
type FeedbackSubmission struct {
	UserID       string
	Question     string
	Spread       Layout
	Response     string
	FeedbackText string
	Rating       int
	HasRating    bool
	DiscussionID string
}

// Qualifies reports whether the submission's rating meets the high-rating
// threshold.
func (s FeedbackSubmission) Qualifies() bool {
	return s.HasRating && s.Rating >= HighRatingThreshold
}

// FeedbackRecord is the unconditional audit record persisted for every
// submission, regardless of rating.
type FeedbackRecord struct {
	ID           string    `gorm:"type:text;primaryKey" json:"id"`
	UserID       string    `gorm:"type:text" json:"user_id"`
	Question     string    `gorm:"type:text" json:"question"`
	Response     string    `gorm:"type:text" json:"model_response"`
	FeedbackText string    `gorm:"type:text" json:"feedback_text"`
	Rating       int       `json:"rating"`
	DiscussionID string    `gorm:"type:text" json:"discussion_id,omitempty"`
	CardsDrawn   string    `gorm:"type:text" json:"cards_drawn"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for FeedbackRecord.
func (FeedbackRecord) TableName() string {
	return "feedback"
}
