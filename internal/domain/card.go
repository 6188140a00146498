package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringArray is a custom type for storing string arrays as JSON in the database.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}

// TarotCard is one card of the fixed catalog. Records are loaded once at
// startup and never mutated at runtime.
type TarotCard struct {
	ID             string      `gorm:"type:text;primaryKey" json:"id"`
	Name           string      `gorm:"type:text;not null;uniqueIndex:idx_cards_name" json:"name"`
	Arcana         string      `gorm:"type:text" json:"arcana,omitempty"`
	Suit           string      `gorm:"type:text" json:"suit,omitempty"`
	Number         string      `gorm:"type:text" json:"number,omitempty"`
	Keywords       StringArray `gorm:"type:text" json:"keywords"`
	MeaningsLight  StringArray `gorm:"type:text" json:"meanings_light"`
	MeaningsShadow StringArray `gorm:"type:text" json:"meanings_shadow"`
	Archetype      string      `gorm:"type:text" json:"archetype,omitempty"`
	Elemental      string      `gorm:"type:text" json:"elemental,omitempty"`
	Numerology     string      `gorm:"type:text" json:"numerology,omitempty"`
}

// TableName returns the database table name for TarotCard.
func (TarotCard) TableName() string {
	return "tarot_cards"
}
