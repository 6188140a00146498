package domain

import (
	"encoding/json"
	"time"
)

// SpreadEntry is one serialized placement inside a stored reading context.
type SpreadEntry struct {
	Position string   `json:"position"`
	CardName string   `json:"card_name"`
	Upright  bool     `json:"upright"`
	Keywords []string `json:"keywords"`
	Meaning  string   `json:"meaning"`
}

// ReadingContext is a persisted record of a past question, layout and
// response, created only from feedback whose rating met the high-rating
// threshold. Records are append-only: there is no update or delete path.
type ReadingContext struct {
	ID            string    `gorm:"type:text;primaryKey" json:"id"`
	Question      string    `gorm:"type:text;not null" json:"question"`
	ModelResponse string    `gorm:"type:text" json:"model_response"`
	UserFeedback  string    `gorm:"type:text" json:"user_feedback"`
	Rating        int       `json:"rating"`
	UserID        string    `gorm:"type:text" json:"user_id"`
	DiscussionID  string    `gorm:"type:text" json:"discussion_id,omitempty"`
	SpreadInfo    string    `gorm:"type:text" json:"spread_info"`
	TotalCards    int       `json:"total_cards"`
	QuestionType  string    `gorm:"type:text" json:"question_type"`
	Source        string    `gorm:"type:text" json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for ReadingContext.
func (ReadingContext) TableName() string {
	return "reading_contexts"
}

// DecodeSpread parses the serialized spread strictly. Callers scanning stored
// records skip the record when this fails rather than aborting the scan.
func (c *ReadingContext) DecodeSpread() ([]SpreadEntry, error) {
	var entries []SpreadEntry
	if err := json.Unmarshal([]byte(c.SpreadInfo), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EncodeSpread serializes a layout into the stored spread representation.
func EncodeSpread(layout Layout) (string, error) {
	entries := make([]SpreadEntry, len(layout))
	for i, p := range layout {
		entries[i] = SpreadEntry{
			Position: p.Position,
			CardName: p.Name,
			Upright:  p.Upright(),
			Keywords: p.PositionKeywords,
			Meaning:  p.Meaning,
		}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ScoredContext is a reading context with the similarity score it received
// against the current layout.
type ScoredContext struct {
	ReadingContext
	Spread          []SpreadEntry `json:"spread"`
	SimilarityScore float64       `json:"similarity_score"`
}
