package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mindpump/mindpump-api/models"
)

func seedSetWithCards(t *testing.T, sets *SetRepository, cards *CardRepository, items []CardInput) (*models.FlashcardSet, []models.Flashcard) {
	t.Helper()
	ctx := context.Background()
	set, err := sets.Create(ctx, nil, "Seed", "")
	require.NoError(t, err)
	created, err := cards.CreateBatch(ctx, set.ID, items)
	require.NoError(t, err)
	return set, created
}

func TestCreateBatchPreservesSubmissionOrder(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)

	_, created := seedSetWithCards(t, sets, cards, []CardInput{
		{Front: "alpha", Back: "1"},
		{Front: "beta", Back: "2"},
		{Front: "gamma", Back: "3"},
	})

	require.Len(t, created, 3)
	require.Equal(t, "alpha", created[0].Front)
	require.Equal(t, "beta", created[1].Front)
	require.Equal(t, "gamma", created[2].Front)
	require.Less(t, created[0].ID, created[1].ID)
	require.Less(t, created[1].ID, created[2].ID)
}

func TestCreateBatchAppliesStudyDefaults(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)

	_, created := seedSetWithCards(t, sets, cards, []CardInput{{Front: "q", Back: "a"}})

	var card models.Flashcard
	require.NoError(t, db.First(&card, created[0].ID).Error)
	require.Zero(t, card.IntervalDays)
	require.Equal(t, 2.5, card.EaseFactor)
	require.Nil(t, card.DueAt)
	require.Zero(t, card.Lapses)
	require.Zero(t, card.Reps)
}

func TestUpdateBatchSkipsUnknownIDs(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)
	ctx := context.Background()

	set, created := seedSetWithCards(t, sets, cards, []CardInput{{Front: "old", Back: "a"}})

	updated, err := cards.UpdateBatch(ctx, set.ID, []CardPatch{
		{ID: created[0].ID, Front: strPtr("new")},
		{ID: 9999, Front: strPtr("ghost")},
	})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.Equal(t, "new", updated[0].Front)
	require.Equal(t, "a", updated[0].Back)
}

func TestUpdateBatchCannotReachOtherSets(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)
	ctx := context.Background()

	setA, cardsA := seedSetWithCards(t, sets, cards, []CardInput{{Front: "a", Back: "1"}})
	_, cardsB := seedSetWithCards(t, sets, cards, []CardInput{{Front: "b", Back: "2"}})

	updated, err := cards.UpdateBatch(ctx, setA.ID, []CardPatch{
		{ID: cardsA[0].ID, Front: strPtr("a2")},
		{ID: cardsB[0].ID, Front: strPtr("hijack")},
	})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.Equal(t, cardsA[0].ID, updated[0].ID)

	var foreign models.Flashcard
	require.NoError(t, db.First(&foreign, cardsB[0].ID).Error)
	require.Equal(t, "b", foreign.Front)
}

func TestDeleteBatchCountsOnlyOwnedRows(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)
	ctx := context.Background()

	set, created := seedSetWithCards(t, sets, cards, []CardInput{
		{Front: "a", Back: "1"},
		{Front: "b", Back: "2"},
		{Front: "c", Back: "3"},
	})

	deleted, err := cards.DeleteBatch(ctx, set.ID, []uint{created[0].ID, created[1].ID, 9999})
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	var remaining int64
	require.NoError(t, db.Model(&models.Flashcard{}).Where("set_id = ?", set.ID).Count(&remaining).Error)
	require.EqualValues(t, 1, remaining)
}

func TestDeleteBatchEmptyIDList(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)

	set, _ := seedSetWithCards(t, sets, cards, []CardInput{{Front: "a", Back: "1"}})

	deleted, err := cards.DeleteBatch(context.Background(), set.ID, nil)
	require.NoError(t, err)
	require.Zero(t, deleted)
}

func TestUpdateStudyTouchesOnlyListedFields(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)
	ctx := context.Background()

	_, created := seedSetWithCards(t, sets, cards, []CardInput{{Front: "q", Back: "a"}})
	card := &created[0]

	ease := 2.0
	require.NoError(t, cards.UpdateStudy(ctx, card, StudyPatch{EaseFactor: &ease}))

	var reloaded models.Flashcard
	require.NoError(t, db.First(&reloaded, card.ID).Error)
	require.Equal(t, 2.0, reloaded.EaseFactor)
	require.Zero(t, reloaded.IntervalDays)
	require.Zero(t, reloaded.Lapses)
	require.Zero(t, reloaded.Reps)
	require.Nil(t, reloaded.DueAt)
}

func TestUpdateStudyExplicitNullClearsDueAt(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)
	ctx := context.Background()

	_, created := seedSetWithCards(t, sets, cards, []CardInput{{Front: "q", Back: "a"}})
	card := &created[0]

	due := time.Now().Add(24 * time.Hour)
	require.NoError(t, cards.UpdateStudy(ctx, card, StudyPatch{DueAt: &due, DueAtSet: true}))

	var reloaded models.Flashcard
	require.NoError(t, db.First(&reloaded, card.ID).Error)
	require.NotNil(t, reloaded.DueAt)

	// A patch without due_at leaves it alone.
	reps := uint(3)
	require.NoError(t, cards.UpdateStudy(ctx, card, StudyPatch{Reps: &reps}))
	require.NoError(t, db.First(&reloaded, card.ID).Error)
	require.NotNil(t, reloaded.DueAt)

	// An explicit null clears it. Read into a fresh struct: GORM's scan
	// leaves a pointer field untouched when the column is NULL, so reusing
	// `reloaded` would keep the stale non-nil value.
	require.NoError(t, cards.UpdateStudy(ctx, card, StudyPatch{DueAtSet: true}))
	var cleared models.Flashcard
	require.NoError(t, db.First(&cleared, card.ID).Error)
	require.Nil(t, cleared.DueAt)
}

func TestUpdateStudyBatchSkipsAndPatchesPerItem(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)
	ctx := context.Background()

	set, created := seedSetWithCards(t, sets, cards, []CardInput{
		{Front: "a", Back: "1"},
		{Front: "b", Back: "2"},
	})

	interval := uint(4)
	reps := uint(7)
	updated, err := cards.UpdateStudyBatch(ctx, set.ID, []StudyBatchItem{
		{ID: created[0].ID, StudyPatch: StudyPatch{IntervalDays: &interval}},
		{ID: 9999, StudyPatch: StudyPatch{Reps: &reps}},
	})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.EqualValues(t, 4, updated[0].IntervalDays)

	var untouched models.Flashcard
	require.NoError(t, db.First(&untouched, created[1].ID).Error)
	require.Zero(t, untouched.IntervalDays)
	require.Zero(t, untouched.Reps)
}

func TestGetWithSetLoadsParent(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	sets := NewSetRepository(db, log)
	cards := NewCardRepository(db, log)
	ctx := context.Background()

	set, created := seedSetWithCards(t, sets, cards, []CardInput{{Front: "q", Back: "a"}})

	card, err := cards.GetWithSet(ctx, created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, card)
	require.NotNil(t, card.Set)
	require.Equal(t, set.ID, card.Set.ID)

	missing, err := cards.GetWithSet(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, missing)
}
