package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"appointment-scheduler/internal/account"
	"appointment-scheduler/internal/schedule"
)

type errorResponse struct {
	Message string                    `json:"message"`
	Errors  []string                  `json:"errors,omitempty"`
	Fields  []schedule.FieldViolation `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Message: msg})
}

// writeError maps service errors onto status codes. Unknown errors are
// logged and hidden behind a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *schedule.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "validation failed",
			Errors:  ve.Messages(),
			Fields:  ve.Violations,
		})
	case errors.Is(err, schedule.ErrConflict):
		writeMessage(w, http.StatusConflict, schedule.ErrConflict.Error())
	case errors.Is(err, schedule.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, account.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, account.ErrEmailTaken.Error())
	case errors.Is(err, account.ErrInvalidCredentials), errors.Is(err, account.ErrBadRefreshToken):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	default:
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
