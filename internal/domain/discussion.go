package domain

import "time"

// Discussion is a reading session: the initial question, the layout drawn
// for it and the (possibly context-enhanced) initial response. Followup
// questions reuse the discussion's original layout.
type Discussion struct {
	ID              string    `gorm:"type:text;primaryKey" json:"discussion_id"`
	UserID          string    `gorm:"type:text;not null" json:"user_id"`
	Topic           string    `gorm:"type:text" json:"topic"`
	InitialQuestion string    `gorm:"type:text" json:"initial_question"`
	InitialResponse string    `gorm:"type:text" json:"initial_response"`
	CardsDrawn      string    `gorm:"type:text" json:"cards_drawn"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the database table name for Discussion.
func (Discussion) TableName() string {
	return "discussions"
}

// DecodeLayout parses the discussion's stored layout strictly.
func (d *Discussion) DecodeLayout() (Layout, error) {
	entries, err := (&ReadingContext{SpreadInfo: d.CardsDrawn}).DecodeSpread()
	if err != nil {
		return nil, err
	}
	layout := make(Layout, len(entries))
	for i, e := range entries {
		orientation := Reversed
		if e.Upright {
			orientation = Upright
		}
		layout[i] = CardPlacement{
			Name:             e.CardName,
			Position:         e.Position,
			Orientation:      orientation,
			Meaning:          e.Meaning,
			PositionKeywords: e.Keywords,
		}
	}
	return layout, nil
}

// FollowupQuestion is one followup exchange within a discussion.
type FollowupQuestion struct {
	ID           string    `gorm:"type:text;primaryKey" json:"question_id"`
	DiscussionID string    `gorm:"type:text;not null;index:idx_followups_discussion" json:"discussion_id"`
	Question     string    `gorm:"type:text" json:"question"`
	Response     string    `gorm:"type:text" json:"response"`
	CreatedAt    time.Time `json:"timestamp"`
}

// TableName returns the database table name for FollowupQuestion.
func (FollowupQuestion) TableName() string {
	return "followup_questions"
}
