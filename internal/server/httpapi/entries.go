package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/swivl/traveldiary/internal/common"
	"github.com/swivl/traveldiary/internal/server/models"
)

// createEntryRequest uses a pointer for userId so a missing field is
// distinguishable from a literal zero.
type createEntryRequest struct {
	UserID   *int64 `json:"userId"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Entry    string `json:"entry"`
}

type updateEntryRequest struct {
	NewLocation string `json:"newLocation"`
	NewDate     string `json:"newDate"`
	NewEntry    string `json:"newEntry"`
}

type createEntryResponse struct {
	EntryID int64 `json:"entryId"`
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, common.ErrValidation)
		return
	}
	if req.UserID == nil {
		s.error(w, r, common.ErrValidation)
		return
	}
	if err := requireFields(req.Location, req.Date, req.Entry); err != nil {
		s.error(w, r, err)
		return
	}

	callerID, _ := userIDFromContext(r.Context())
	entry := &models.DiaryEntry{UserID: *req.UserID, Location: req.Location, Date: req.Date, Entry: req.Entry}
	created, err := s.entries.Create(r.Context(), callerID, entry)
	if err != nil {
		s.error(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createEntryResponse{EntryID: created.ID})
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("entryId"), 10, 64)
	if err != nil {
		http.Error(w, "Diary entry not found", http.StatusNotFound)
		return
	}

	callerID, _ := userIDFromContext(r.Context())
	entry, err := s.entries.Get(r.Context(), id, callerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			http.Error(w, "Diary entry not found", http.StatusNotFound)
			return
		}
		s.error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("entryId"), 10, 64)
	if err != nil {
		http.Error(w, "Diary entry not found", http.StatusNotFound)
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, common.ErrValidation)
		return
	}
	if err := requireFields(req.NewLocation, req.NewDate, req.NewEntry); err != nil {
		s.error(w, r, err)
		return
	}

	callerID, _ := userIDFromContext(r.Context())
	if err := s.entries.Update(r.Context(), id, callerID, req.NewLocation, req.NewDate, req.NewEntry); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			http.Error(w, "Diary entry not found", http.StatusNotFound)
			return
		}
		s.error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Diary entry updated successfully"))
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("entryId"), 10, 64)
	if err != nil {
		http.Error(w, "Diary entry not found", http.StatusNotFound)
		return
	}

	callerID, _ := userIDFromContext(r.Context())
	if err := s.entries.Delete(r.Context(), id, callerID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			http.Error(w, "Diary entry not found", http.StatusNotFound)
			return
		}
		s.error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Diary entry deleted successfully"))
}
