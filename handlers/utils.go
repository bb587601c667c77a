package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// respondNotFound is the single response for both "no such row" and
// "row owned by someone else", so existence never leaks.
func respondNotFound(w http.ResponseWriter) {
	respondDetail(w, http.StatusNotFound, "Not found.")
}

func respondFieldErrors(w http.ResponseWriter, field string, messages []string) {
	respondJSON(w, http.StatusBadRequest, map[string]map[string][]string{
		"errors": {field: messages},
	})
}

func parseIDParam(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
