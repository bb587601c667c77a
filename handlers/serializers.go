package handlers

import (
	"time"

	"github.com/mindpump/mindpump-api/models"
)

// Response shapes for sets. Cards serialize straight from the model; sets
// need two views: the list annotates a card count without bodies, the detail
// nests the full ordered card list.

type setListItem struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type setDetail struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CardCount   int                `json:"card_count"`
	Cards       []models.Flashcard `json:"cards"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func newSetListItem(set models.FlashcardSet) setListItem {
	return setListItem{
		ID:          set.ID,
		Name:        set.Name,
		Description: set.Description,
		CardCount:   len(set.Flashcards),
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
}

func newSetDetail(set models.FlashcardSet) setDetail {
	cards := set.Flashcards
	if cards == nil {
		cards = []models.Flashcard{}
	}
	return setDetail{
		ID:          set.ID,
		Name:        set.Name,
		Description: set.Description,
		CardCount:   len(cards),
		Cards:       cards,
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
}
