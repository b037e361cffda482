package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"sportsmeet-portal/internal/auth"
	"sportsmeet-portal/internal/eligibility"
	"sportsmeet-portal/internal/registration"
	"sportsmeet-portal/internal/store/script"
)

// APIError is the JSON error body: {"code": ..., "error": ...}.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`

	Participant int    `json:"participant,omitempty"`
	Field       string `json:"field,omitempty"`
	Discipline  string `json:"discipline,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

func NewAPIError(status int, code, msg string) *APIError {
	return &APIError{Status: status, Code: code, Message: msg}
}

func BadRequest(msg string) *APIError {
	return NewAPIError(http.StatusBadRequest, "BAD_REQUEST", msg)
}

func NotFound(msg string) *APIError {
	return NewAPIError(http.StatusNotFound, "NOT_FOUND", msg)
}

// toAPIError maps domain errors onto HTTP statuses. Unknown errors become 500.
func toAPIError(err error) *APIError {
	var (
		apiErr   *APIError
		v        *eligibility.Violation
		mismatch *registration.TeamMismatchError
		status   *script.StatusError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &v):
		return &APIError{
			Status:      http.StatusUnprocessableEntity,
			Code:        string(v.Kind),
			Message:     v.Message,
			Participant: v.Participant,
			Field:       v.Field,
			Discipline:  v.Discipline,
		}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return NewAPIError(http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, registration.ErrNotLoggedIn):
		return NewAPIError(http.StatusUnauthorized, "NOT_LOGGED_IN", err.Error())
	case errors.Is(err, registration.ErrAdminForbidden):
		return NewAPIError(http.StatusForbidden, "ADMIN_FORBIDDEN", err.Error())
	case errors.As(err, &mismatch):
		return NewAPIError(http.StatusForbidden, "TEAM_MISMATCH", err.Error())
	case errors.Is(err, registration.ErrSubmitted), errors.Is(err, registration.ErrSubmitInProgress):
		return NewAPIError(http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, registration.ErrUnknownField),
		errors.Is(err, registration.ErrIndexOutOfRange),
		errors.Is(err, registration.ErrSlotOutOfRange),
		errors.Is(err, registration.ErrUnknownDiscipline):
		return BadRequest(err.Error())
	case errors.As(err, &status):
		return NewAPIError(http.StatusBadGateway, "STORE_UNAVAILABLE",
			fmt.Sprintf("Submission failed: server returned %d.", status.Code))
	case errors.Is(err, script.ErrRejected):
		return NewAPIError(http.StatusBadGateway, "STORE_UNAVAILABLE", "Submission failed: the spreadsheet rejected the registration.")
	case errors.Is(err, script.ErrInvalidResponse):
		return NewAPIError(http.StatusBadGateway, "STORE_UNAVAILABLE", "Submission failed: server returned invalid JSON.")
	default:
		return NewAPIError(http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Str("code", apiErr.Code).Msg("request failed")
	}
	writeJSON(w, apiErr.Status, apiErr)
}

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(body))
}
