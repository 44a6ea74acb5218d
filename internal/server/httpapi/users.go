package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/swivl/traveldiary/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	NewUsername string `json:"newUsername"`
	NewEmail    string `json:"newEmail"`
}

type tokenResponse struct {
	UserID int64  `json:"userId"`
	Token  string `json:"token"`
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, common.ErrValidation)
		return
	}
	if err := requireFields(req.Username, req.Email, req.Password); err != nil {
		s.error(w, r, err)
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.error(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{UserID: user.ID, Token: token})
}

func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, common.ErrValidation)
		return
	}
	if err := requireFields(req.Email, req.Password); err != nil {
		s.error(w, r, err)
		return
	}

	userID, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{UserID: userID, Token: token})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, common.ErrValidation)
		return
	}
	if err := requireFields(req.NewUsername, req.NewEmail); err != nil {
		s.error(w, r, err)
		return
	}

	callerID, _ := userIDFromContext(r.Context())
	if err := s.users.Update(r.Context(), id, callerID, req.NewUsername, req.NewEmail); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		s.error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("User updated successfully"))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	callerID, _ := userIDFromContext(r.Context())
	if err := s.users.Delete(r.Context(), id, callerID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		s.error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("User deleted successfully"))
}
