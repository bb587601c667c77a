package repository

import (
	"encoding/json"
	"time"
)

// Batch request bodies arrive as explicit typed records, validated by the
// handlers before any write happens.

// CardInput is one item of a batch create: both fields are required.
type CardInput struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// CardPatch is one item of a batch edit. Only non-nil fields are changed.
type CardPatch struct {
	ID    uint    `json:"id"`
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

// StudyPatch is a partial study-status update. DueAtSet records whether the
// request carried a due_at key at all, so an explicit null can clear the
// due date while an absent key leaves it untouched.
type StudyPatch struct {
	IntervalDays *uint
	EaseFactor   *float64
	DueAt        *time.Time
	DueAtSet     bool
	Lapses       *uint
	Reps         *uint
}

func (p *StudyPatch) UnmarshalJSON(data []byte) error {
	var fields struct {
		IntervalDays *uint      `json:"interval_days"`
		EaseFactor   *float64   `json:"ease_factor"`
		DueAt        *time.Time `json:"due_at"`
		Lapses       *uint      `json:"lapses"`
		Reps         *uint      `json:"reps"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	p.IntervalDays = fields.IntervalDays
	p.EaseFactor = fields.EaseFactor
	p.DueAt = fields.DueAt
	p.Lapses = fields.Lapses
	p.Reps = fields.Reps
	_, p.DueAtSet = keys["due_at"]
	return nil
}

// Columns maps the patch to the card columns it touches. updated_at is always
// included, so even an empty patch refreshes the timestamp.
func (p StudyPatch) Columns() map[string]interface{} {
	vals := map[string]interface{}{"updated_at": time.Now()}
	if p.IntervalDays != nil {
		vals["interval_days"] = *p.IntervalDays
	}
	if p.EaseFactor != nil {
		vals["ease_factor"] = *p.EaseFactor
	}
	if p.DueAtSet {
		vals["due_at"] = p.DueAt
	}
	if p.Lapses != nil {
		vals["lapses"] = *p.Lapses
	}
	if p.Reps != nil {
		vals["reps"] = *p.Reps
	}
	return vals
}

// StudyBatchItem is one item of a batch study update: a card id plus any
// subset of the study fields.
type StudyBatchItem struct {
	ID uint
	StudyPatch
}

func (it *StudyBatchItem) UnmarshalJSON(data []byte) error {
	var id struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &it.StudyPatch); err != nil {
		return err
	}
	it.ID = id.ID
	return nil
}
