package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mindpump/mindpump-api/logger"
	"github.com/mindpump/mindpump-api/middleware"
	"github.com/mindpump/mindpump-api/repository"
)

type DBHandler struct {
	Log   *logger.Logger
	Sets  *repository.SetRepository
	Cards *repository.CardRepository
}

// callerID maps the request identity to an owner filter: nil means the
// anonymous partition.
func callerID(r *http.Request) *uint {
	if user := middleware.CurrentUser(r.Context()); user != nil {
		return &user.ID
	}
	return nil
}

func (h *DBHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.Sets.ListVisible(r.Context(), callerID(r))
	if err != nil {
		h.Log.Error("failed to list sets", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Could not load sets.")
		return
	}

	items := make([]setListItem, 0, len(sets))
	for _, set := range sets {
		items = append(items, newSetListItem(set))
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *DBHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var reqData struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(reqData.Name) == "" {
		respondFieldErrors(w, "name", []string{"This field is required."})
		return
	}

	set, err := h.Sets.Create(r.Context(), callerID(r), reqData.Name, reqData.Description)
	if err != nil {
		h.Log.Error("failed to create set", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Could not create set.")
		return
	}
	respondJSON(w, http.StatusCreated, newSetDetail(*set))
}

func (h *DBHandler) GetSetByID(w http.ResponseWriter, r *http.Request) {
	setID, ok := parseIDParam(r, "setID")
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Invalid set ID")
		return
	}

	set, err := h.Sets.GetByIDAndUser(r.Context(), setID, callerID(r))
	if err != nil {
		h.Log.Error("failed to load set", "error", err, "set_id", setID)
		respondDetail(w, http.StatusInternalServerError, "Could not load set.")
		return
	}
	if set == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, newSetDetail(*set))
}

func (h *DBHandler) UpdateSetByID(w http.ResponseWriter, r *http.Request) {
	setID, ok := parseIDParam(r, "setID")
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Invalid set ID")
		return
	}

	var reqData struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
		respondFieldErrors(w, "name", []string{"This field may not be blank."})
		return
	}

	set, err := h.Sets.GetByIDAndUser(r.Context(), setID, callerID(r))
	if err != nil {
		h.Log.Error("failed to load set", "error", err, "set_id", setID)
		respondDetail(w, http.StatusInternalServerError, "Could not load set.")
		return
	}
	if set == nil {
		respondNotFound(w)
		return
	}

	if err := h.Sets.Update(r.Context(), set, reqData.Name, reqData.Description); err != nil {
		h.Log.Error("failed to update set", "error", err, "set_id", setID)
		respondDetail(w, http.StatusInternalServerError, "Could not update set.")
		return
	}
	respondJSON(w, http.StatusOK, newSetDetail(*set))
}

func (h *DBHandler) DeleteSetByID(w http.ResponseWriter, r *http.Request) {
	setID, ok := parseIDParam(r, "setID")
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Invalid set ID")
		return
	}

	set, err := h.Sets.GetByIDAndUser(r.Context(), setID, callerID(r))
	if err != nil {
		h.Log.Error("failed to load set", "error", err, "set_id", setID)
		respondDetail(w, http.StatusInternalServerError, "Could not load set.")
		return
	}
	if set == nil {
		respondNotFound(w)
		return
	}

	if err := h.Sets.Delete(r.Context(), set); err != nil {
		h.Log.Error("failed to delete set", "error", err, "set_id", setID)
		respondDetail(w, http.StatusInternalServerError, "Could not delete set.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
