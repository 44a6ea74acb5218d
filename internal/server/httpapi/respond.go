package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/swivl/traveldiary/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// error maps sentinel errors onto the fixed responses of the public API.
// Anything unrecognized is logged and answered with a bare 500; no failure
// detail reaches the client.
func (s *Server) error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		http.Error(w, "Missing required fields.", http.StatusBadRequest)
	case errors.Is(err, common.ErrMissingToken):
		http.Error(w, "Access Denied. Token is not provided.", http.StatusUnauthorized)
	case errors.Is(err, common.ErrInvalidToken):
		http.Error(w, "Invalid Token.", http.StatusForbidden)
	case errors.Is(err, common.ErrInvalidCredentials):
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, common.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		s.logger.Error(r.Context(), "request failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
