package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mindpump/mindpump-api/middleware"
	"github.com/mindpump/mindpump-api/models"
	"github.com/mindpump/mindpump-api/repository"
)

const minEaseFactor = 1.3

// loadScopedSet resolves the {setID} path segment against the caller's scope
// and writes the error response itself when that fails.
func (h *DBHandler) loadScopedSet(w http.ResponseWriter, r *http.Request) (*models.FlashcardSet, bool) {
	setID, ok := parseIDParam(r, "setID")
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Invalid set ID")
		return nil, false
	}
	set, err := h.Sets.GetByIDAndUser(r.Context(), setID, callerID(r))
	if err != nil {
		h.Log.Error("failed to load set", "error", err, "set_id", setID)
		respondDetail(w, http.StatusInternalServerError, "Could not load set.")
		return nil, false
	}
	if set == nil {
		respondNotFound(w)
		return nil, false
	}
	return set, true
}

// CreateCardsBatch creates all cards or none: a single malformed item rejects
// the whole batch before any write.
func (h *DBHandler) CreateCardsBatch(w http.ResponseWriter, r *http.Request) {
	set, ok := h.loadScopedSet(w, r)
	if !ok {
		return
	}

	var reqData struct {
		Cards []repository.CardInput `json:"cards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	var problems []string
	for i, item := range reqData.Cards {
		if item.Front == "" || item.Back == "" {
			problems = append(problems, fmt.Sprintf("Item %d must have 'front' and 'back'", i))
		}
	}
	if len(problems) > 0 {
		respondFieldErrors(w, "cards", problems)
		return
	}

	created, err := h.Cards.CreateBatch(r.Context(), set.ID, reqData.Cards)
	if err != nil {
		h.Log.Error("failed to create cards", "error", err, "set_id", set.ID)
		respondDetail(w, http.StatusInternalServerError, "Could not create cards.")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// EditCardsBatch updates content fields per item; ids outside the set are
// skipped and only the matched cards come back.
func (h *DBHandler) EditCardsBatch(w http.ResponseWriter, r *http.Request) {
	set, ok := h.loadScopedSet(w, r)
	if !ok {
		return
	}

	var reqData struct {
		Cards []repository.CardPatch `json:"cards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	var problems []string
	for i, item := range reqData.Cards {
		if item.ID == 0 {
			problems = append(problems, fmt.Sprintf("Item %d must have 'id'", i))
		}
	}
	if len(problems) > 0 {
		respondFieldErrors(w, "cards", problems)
		return
	}

	updated, err := h.Cards.UpdateBatch(r.Context(), set.ID, reqData.Cards)
	if err != nil {
		h.Log.Error("failed to edit cards", "error", err, "set_id", set.ID)
		respondDetail(w, http.StatusInternalServerError, "Could not edit cards.")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *DBHandler) DeleteCardsBatch(w http.ResponseWriter, r *http.Request) {
	set, ok := h.loadScopedSet(w, r)
	if !ok {
		return
	}

	var reqData struct {
		CardIDs []uint `json:"card_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.Cards.DeleteBatch(r.Context(), set.ID, reqData.CardIDs)
	if err != nil {
		h.Log.Error("failed to delete cards", "error", err, "set_id", set.ID)
		respondDetail(w, http.StatusInternalServerError, "Could not delete cards.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (h *DBHandler) UpdateStudyBatch(w http.ResponseWriter, r *http.Request) {
	set, ok := h.loadScopedSet(w, r)
	if !ok {
		return
	}

	var reqData struct {
		Cards []repository.StudyBatchItem `json:"cards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	var problems []string
	for i, item := range reqData.Cards {
		if item.ID == 0 {
			problems = append(problems, fmt.Sprintf("Item %d must have 'id'", i))
		}
	}
	if len(problems) > 0 {
		respondFieldErrors(w, "cards", problems)
		return
	}

	updated, err := h.Cards.UpdateStudyBatch(r.Context(), set.ID, reqData.Cards)
	if err != nil {
		h.Log.Error("failed to update study status", "error", err, "set_id", set.ID)
		respondDetail(w, http.StatusInternalServerError, "Could not update study status.")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// UpdateCardStudy patches the study fields of one card. Ownership runs
// through the parent set; a mismatch reads exactly like a missing card.
func (h *DBHandler) UpdateCardStudy(w http.ResponseWriter, r *http.Request) {
	cardID, ok := parseIDParam(r, "cardID")
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Invalid card ID")
		return
	}

	card, err := h.Cards.GetWithSet(r.Context(), cardID)
	if err != nil {
		h.Log.Error("failed to load card", "error", err, "card_id", cardID)
		respondDetail(w, http.StatusInternalServerError, "Could not load card.")
		return
	}
	if card == nil || card.Set == nil || !ownerMatches(card.Set.UserID, middleware.CurrentUser(r.Context())) {
		respondNotFound(w)
		return
	}

	var patch repository.StudyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.EaseFactor != nil && *patch.EaseFactor < minEaseFactor {
		respondFieldErrors(w, "ease_factor", []string{
			fmt.Sprintf("Ensure this value is greater than or equal to %v.", minEaseFactor),
		})
		return
	}

	if err := h.Cards.UpdateStudy(r.Context(), card, patch); err != nil {
		h.Log.Error("failed to update study status", "error", err, "card_id", cardID)
		respondDetail(w, http.StatusInternalServerError, "Could not update study status.")
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// ownerMatches pairs an owned set with its owner and an ownerless set with
// anonymous callers only.
func ownerMatches(ownerID *uint, user *models.User) bool {
	if ownerID == nil {
		return user == nil
	}
	return user != nil && *ownerID == user.ID
}
