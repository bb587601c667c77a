package repository

import (
	"context"
	"errors"

	"github.com/mindpump/mindpump-api/logger"
	"github.com/mindpump/mindpump-api/models"
	"gorm.io/gorm"
)

// SetRepository runs all flashcard-set queries. Every lookup is scoped by
// owner in the same query as the id match, so a wrong owner and a missing id
// are indistinguishable to callers.
type SetRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSetRepository(db *gorm.DB, baseLog *logger.Logger) *SetRepository {
	return &SetRepository{db: db, log: baseLog.With("repo", "SetRepository")}
}

// scoped filters by the owning user, or by ownerless rows for anonymous callers.
func scoped(tx *gorm.DB, userID *uint) *gorm.DB {
	if userID != nil {
		return tx.Where("user_id = ?", *userID)
	}
	return tx.Where("user_id IS NULL")
}

func (r *SetRepository) ListVisible(ctx context.Context, userID *uint) ([]models.FlashcardSet, error) {
	var sets []models.FlashcardSet
	err := scoped(r.db.WithContext(ctx), userID).
		Preload("Flashcards").
		Order("updated_at DESC").
		Find(&sets).Error
	if err != nil {
		return nil, err
	}
	return sets, nil
}

// GetByIDAndUser returns (nil, nil) when the set does not exist or belongs to
// a different owner.
func (r *SetRepository) GetByIDAndUser(ctx context.Context, id uint, userID *uint) (*models.FlashcardSet, error) {
	var set models.FlashcardSet
	err := scoped(r.db.WithContext(ctx), userID).
		Preload("Flashcards", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id ASC")
		}).
		First(&set, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *SetRepository) Create(ctx context.Context, userID *uint, name, description string) (*models.FlashcardSet, error) {
	set := models.FlashcardSet{
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := r.db.WithContext(ctx).Create(&set).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

// Update changes only the supplied fields; updated_at refreshes either way.
func (r *SetRepository) Update(ctx context.Context, set *models.FlashcardSet, name, description *string) error {
	if name != nil {
		set.Name = *name
	}
	if description != nil {
		set.Description = *description
	}
	return r.db.WithContext(ctx).
		Model(set).
		Select("name", "description", "updated_at").
		Updates(set).Error
}

// Delete removes the set and its cards, children first, in one transaction.
func (r *SetRepository) Delete(ctx context.Context, set *models.FlashcardSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_id = ?", set.ID).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		return tx.Delete(set).Error
	})
}
