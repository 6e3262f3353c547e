package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dsemenov/pressroom/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "failed to encode response", "error", err.Error())
	}
}

// writeError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500: the detail goes to the log, the client gets a
// generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorMissingToken):
		s.writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "No token, authorization denied"})
	case errors.Is(err, common.ErrorInvalidToken):
		s.writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Token is not valid"})
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid credentials"})
	case errors.Is(err, common.ErrorForbidden):
		s.writeJSON(w, http.StatusForbidden, messageResponse{Message: "Admin access required"})
	case errors.Is(err, common.ErrorNotFound):
		s.writeJSON(w, http.StatusNotFound, messageResponse{Message: "Not found"})
	default:
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
		s.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server error"})
	}
}
