package controllers

import (
	"log/slog"
	"net/http"

	"eventcalendar/config"
	"eventcalendar/internal/delivery/http/helpers"
	"eventcalendar/internal/domain"
)

const maxImportBytes = 5 << 20

type CalendarController struct {
	Logger   *slog.Logger
	Service  domain.CalendarService
	Settings *config.Settings
}

func NewCalendarController(logger *slog.Logger, svc domain.CalendarService, settings *config.Settings) *CalendarController {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &CalendarController{
		Logger:   logger,
		Service:  svc,
		Settings: settings,
	}
}

// Week godoc
// @Summary Week view
// @Description The seven days of the week containing date, each with its events sorted by start time.
// @Tags calendar
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} helpers.APIResponse "data contains the week view"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/calendar/week [get]
func (c *CalendarController) Week(w http.ResponseWriter, r *http.Request) {
	day, err := dateParam(r, "date", c.Settings.Location())
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	view, err := c.Service.Week(r.Context(), day)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// Month godoc
// @Summary Month view
// @Description The month grid containing date; cells outside the month are null.
// @Tags calendar
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} helpers.APIResponse "data contains the month view"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/calendar/month [get]
func (c *CalendarController) Month(w http.ResponseWriter, r *http.Request) {
	day, err := dateParam(r, "date", c.Settings.Location())
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	view, err := c.Service.Month(r.Context(), day)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// ExportICS godoc
// @Summary Export events as iCalendar
// @Tags calendar
// @Produce text/calendar
// @Success 200 {string} string "VCALENDAR document"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events.ics [get]
func (c *CalendarController) ExportICS(w http.ResponseWriter, r *http.Request) {
	body, err := c.Service.ExportICS(r.Context())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// ImportICS godoc
// @Summary Import events from iCalendar
// @Description Stores every VEVENT that fits on a single day; the rest are skipped.
// @Tags calendar
// @Accept text/calendar
// @Produce json
// @Success 201 {object} helpers.APIResponse "data contains the imported events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/events/import [post]
func (c *CalendarController) ImportICS(w http.ResponseWriter, r *http.Request) {
	if r.Body == nil || r.ContentLength == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "request body is required")
		return
	}
	imported, err := c.Service.ImportICS(r.Context(), http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "ics import", "count", len(imported))
	helpers.WriteJSONSuccess(w, http.StatusCreated, imported)
}

// GetSettings godoc
// @Summary Calendar settings
// @Description Week start, timezone, categories, notification options and holidays.
// @Tags calendar
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the settings"
// @Router /api/settings [get]
func (c *CalendarController) GetSettings(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Settings)
}
