package models

import "time"

// Flashcard is a front/back content pair plus spaced-repetition bookkeeping.
// The study fields are a dumb store: values come entirely from the caller,
// no scheduling algorithm runs server-side.
type Flashcard struct {
	ID    uint          `gorm:"primaryKey" json:"id"`
	SetID uint          `gorm:"not null;index" json:"-"`
	Set   *FlashcardSet `gorm:"foreignKey:SetID" json:"-"`
	Front string        `gorm:"not null" json:"front"`
	Back  string        `gorm:"not null" json:"back"`

	// Study status
	IntervalDays uint       `gorm:"default:0" json:"interval_days"`
	EaseFactor   float64    `gorm:"default:2.5" json:"ease_factor"`
	DueAt        *time.Time `gorm:"default:null" json:"due_at"`
	Lapses       uint       `gorm:"default:0" json:"lapses"`
	Reps         uint       `gorm:"default:0" json:"reps"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
