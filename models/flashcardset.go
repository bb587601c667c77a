package models

import "time"

// FlashcardSet is a named collection of flashcards owned by zero or one user.
// A nil UserID marks an anonymous set, visible only to unauthenticated callers.
type FlashcardSet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"-"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Flashcards []Flashcard `gorm:"foreignKey:SetID" json:"-"`
}
