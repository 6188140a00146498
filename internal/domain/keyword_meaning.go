package domain

import "time"

// KeywordMeaningSource tags where a keyword meaning came from.
const KeywordMeaningSourceFeedback = "user_feedback"

// KeywordMeaning is a per-symbol meaning refined by real user language. On
// each qualifying feedback event a record is either created or has its
// feedback snippet list extended. The lookup-then-write is not atomic:
// concurrent qualifying feedback for the same keyword can race, and lost
// updates are accepted rather than serialized.
type KeywordMeaning struct {
	ID          string      `gorm:"type:text;primaryKey" json:"id"`
	Keyword     string      `gorm:"type:text;not null;index:idx_keyword_meanings_keyword" json:"keyword"`
	Meaning     string      `gorm:"type:text" json:"meaning"`
	Feedback    StringArray `gorm:"type:text" json:"feedback"`
	Source      string      `gorm:"type:text" json:"source"`
	Orientation Orientation `gorm:"type:text" json:"orientation"`
	Position    int         `json:"position"`
	CardName    string      `gorm:"type:text" json:"card_name"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName returns the database table name for KeywordMeaning.
func (KeywordMeaning) TableName() string {
	return "keyword_meanings"
}
