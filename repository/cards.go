package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mindpump/mindpump-api/logger"
	"github.com/mindpump/mindpump-api/models"
	"gorm.io/gorm"
)

// CardRepository runs card mutations. All batch operations are scoped to one
// set; items referencing cards outside that set are silently skipped, which
// is the intended tolerant-batch semantic, not an error path.
type CardRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCardRepository(db *gorm.DB, baseLog *logger.Logger) *CardRepository {
	return &CardRepository{db: db, log: baseLog.With("repo", "CardRepository")}
}

// CreateBatch inserts all cards in one transaction and returns them in
// submission order. Validation happens before this is called; no partial
// batch is ever written.
func (r *CardRepository) CreateBatch(ctx context.Context, setID uint, items []CardInput) ([]models.Flashcard, error) {
	cards := make([]models.Flashcard, 0, len(items))
	for _, item := range items {
		cards = append(cards, models.Flashcard{
			SetID: setID,
			Front: item.Front,
			Back:  item.Back,
		})
	}
	if len(cards) == 0 {
		return cards, nil
	}
	if err := r.db.WithContext(ctx).Create(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// UpdateBatch edits content fields per item and returns only the cards that
// were actually matched and updated.
func (r *CardRepository) UpdateBatch(ctx context.Context, setID uint, items []CardPatch) ([]models.Flashcard, error) {
	updated := make([]models.Flashcard, 0, len(items))
	for _, item := range items {
		var card models.Flashcard
		err := r.db.WithContext(ctx).Where("set_id = ?", setID).First(&card, item.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		vals := map[string]interface{}{"updated_at": time.Now()}
		if item.Front != nil {
			vals["front"] = *item.Front
		}
		if item.Back != nil {
			vals["back"] = *item.Back
		}
		if err := r.db.WithContext(ctx).Model(&card).Updates(vals).Error; err != nil {
			return nil, err
		}
		updated = append(updated, card)
	}
	return updated, nil
}

// DeleteBatch deletes the cards among ids that belong to the set and returns
// how many rows actually went away.
func (r *CardRepository) DeleteBatch(ctx context.Context, setID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("set_id = ? AND id IN ?", setID, ids).
		Delete(&models.Flashcard{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateStudyBatch applies per-item study patches with the same
// skip-if-not-found semantics as UpdateBatch.
func (r *CardRepository) UpdateStudyBatch(ctx context.Context, setID uint, items []StudyBatchItem) ([]models.Flashcard, error) {
	updated := make([]models.Flashcard, 0, len(items))
	for _, item := range items {
		var card models.Flashcard
		err := r.db.WithContext(ctx).Where("set_id = ?", setID).First(&card, item.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Model(&card).Updates(item.Columns()).Error; err != nil {
			return nil, err
		}
		updated = append(updated, card)
	}
	return updated, nil
}

// GetWithSet loads one card with its parent set so handlers can check
// ownership. Returns (nil, nil) when the card does not exist.
func (r *CardRepository) GetWithSet(ctx context.Context, id uint) (*models.Flashcard, error) {
	var card models.Flashcard
	err := r.db.WithContext(ctx).Preload("Set").First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateStudy applies a study patch to one card, touching only the listed
// fields plus updated_at.
func (r *CardRepository) UpdateStudy(ctx context.Context, card *models.Flashcard, patch StudyPatch) error {
	return r.db.WithContext(ctx).Model(card).Updates(patch.Columns()).Error
}
