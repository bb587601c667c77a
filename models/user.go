package models

import "time"

// User is the single system identity resolved by the Basic Auth gate.
// It exists so owned sets have a stable owner row; it is never exposed
// over the API.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null;size:150" json:"username"`
	CreatedAt time.Time `json:"created_at"`

	FlashcardSets []FlashcardSet `gorm:"foreignKey:UserID" json:"-"`
}
