package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/delivery/http/helpers"
	"eventcalendar/internal/domain"
)

// writeError maps a service error onto the response envelope. Unexpected
// errors are logged and reported as 500.
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidEvent), errors.Is(err, domain.ErrInvalidRepeat):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoPendingAction):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// dateParam reads a YYYY-MM-DD query parameter, defaulting to today in loc.
func dateParam(r *http.Request, name string, loc *time.Location) (datetime.Date, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return datetime.DateOf(time.Now().In(loc)), nil
	}
	return datetime.ParseDate(s)
}

// boolParam reads an optional boolean query parameter ("true"/"false").
func boolParam(r *http.Request, name string) (*bool, bool) {
	switch r.URL.Query().Get(name) {
	case "":
		return nil, true
	case "true", "1":
		v := true
		return &v, true
	case "false", "0":
		v := false
		return &v, true
	default:
		return nil, false
	}
}
