package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/delivery/http/helpers"
	"eventcalendar/internal/domain"
)

// SubmitEventRequest is the request body for POST /api/events/submit. An
// event with an id is an edit; single_only carries the single/series
// decision for recurring edits and force saves despite overlaps.
type SubmitEventRequest struct {
	Event      *domain.Event `json:"event"`
	Force      bool          `json:"force"`
	SingleOnly *bool         `json:"single_only,omitempty"`
}

// Validate implements Validator.
func (s *SubmitEventRequest) Validate() []string {
	if s.Event == nil {
		return []string{"event is required"}
	}
	return s.Event.Validate()
}

// SubmitEventResponse is the data of POST /api/events/submit. When saved is
// false, overlaps lists the conflicting events and nothing was stored.
type SubmitEventResponse struct {
	Saved    bool            `json:"saved"`
	Events   []*domain.Event `json:"events"`
	Overlaps []*domain.Event `json:"overlaps"`
}

// SubmitEventSuccessResponse is the success response envelope for POST /api/events/submit.
type SubmitEventSuccessResponse struct {
	Data  SubmitEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// EditRecurringRequest is the request body for PUT /api/events/{id}/recurring.
type EditRecurringRequest struct {
	Event      *domain.Event `json:"event"`
	SingleOnly bool          `json:"single_only"`
}

// Validate implements Validator.
func (e *EditRecurringRequest) Validate() []string {
	if e.Event == nil {
		return []string{"event is required"}
	}
	return e.Event.Validate()
}

// MoveEventRequest is the request body for POST /api/events/{id}/move.
type MoveEventRequest struct {
	Date       datetime.Date `json:"date"`
	SingleOnly *bool         `json:"single_only,omitempty"`
}

// Validate implements Validator.
func (m *MoveEventRequest) Validate() []string {
	if m.Date.IsZero() {
		return []string{"date is required"}
	}
	return nil
}

// SearchEventsResponse is the data of GET /api/events/search.
type SearchEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type EventController struct {
	Logger   *slog.Logger
	Service  domain.EventService
	Location *time.Location
}

func NewEventController(logger *slog.Logger, svc domain.EventService, loc *time.Location) *EventController {
	if loc == nil {
		loc = time.Local
	}
	return &EventController{
		Logger:   logger,
		Service:  svc,
		Location: loc,
	}
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	e, err := c.Service.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, e)
}

// SubmitEvent godoc
// @Summary Save the event form
// @Description Creates or edits an event. Overlapping single events are not saved unless force is set; recurring creates are expanded into instances and never overlap-checked.
// @Tags events
// @Accept json
// @Produce json
// @Param request body SubmitEventRequest true "Form submission"
// @Success 200 {object} controllers.SubmitEventSuccessResponse "edit saved, or saved=false with overlaps"
// @Success 201 {object} controllers.SubmitEventSuccessResponse "created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/submit [post]
func (c *EventController) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var req SubmitEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.SubmitEvent(r.Context(), domain.SubmitEventInput{
		Event:      req.Event,
		Force:      req.Force,
		SingleOnly: req.SingleOnly,
	})
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}

	resp := SubmitEventResponse{Saved: res.Saved(), Events: res.Events, Overlaps: res.Overlaps}
	if resp.Overlaps == nil {
		resp.Overlaps = []*domain.Event{}
	}
	status := http.StatusOK
	if resp.Saved && req.Event.ID == "" {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, resp)
}

// FindOverlaps godoc
// @Summary List events overlapping a candidate
// @Tags events
// @Accept json
// @Produce json
// @Param event body domain.Event true "Candidate event"
// @Success 200 {object} helpers.APIResponse "data contains the overlapping events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/events/overlaps [post]
func (c *EventController) FindOverlaps(w http.ResponseWriter, r *http.Request) {
	var candidate domain.Event
	if !helpers.DecodeAndValidate(w, r, &candidate) {
		return
	}
	overlaps, err := c.Service.FindOverlaps(r.Context(), &candidate)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, overlaps)
}

// EditRecurring godoc
// @Summary Edit a recurring event
// @Description Edits one instance (detaching it from its series) or the whole series. A changed date shifts every instance by the same number of days.
// @Tags recurring
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body EditRecurringRequest true "Edited event and decision"
// @Success 200 {object} helpers.APIResponse "data contains the edited event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{id}/recurring [put]
func (c *EventController) EditRecurring(w http.ResponseWriter, r *http.Request) {
	var req EditRecurringRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	req.Event.ID = r.PathValue("id")
	if err := c.Service.EditRecurring(r.Context(), req.Event, req.SingleOnly); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, req.Event)
}

// DeleteRecurring godoc
// @Summary Delete a recurring event
// @Tags recurring
// @Produce json
// @Param id path string true "Event ID"
// @Param single_only query bool false "Delete only this instance"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{id}/recurring [delete]
func (c *EventController) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	single, ok := boolParam(r, "single_only")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "single_only must be true or false")
		return
	}
	id := r.PathValue("id")
	if err := c.Service.DeleteRecurring(r.Context(), id, single != nil && *single); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"id": id})
}

// MoveEvent godoc
// @Summary Move an event to another day
// @Description Recurring events need single_only; without it nothing is saved and 409 decision_required is returned.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body MoveEventRequest true "Target date"
// @Success 200 {object} helpers.APIResponse "data.moved reports whether the event changed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: decision_required"
// @Router /api/events/{id}/move [post]
func (c *EventController) MoveEvent(w http.ResponseWriter, r *http.Request) {
	var req MoveEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.MoveEvent(r.Context(), r.PathValue("id"), req.Date, req.SingleOnly)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if _, waiting := res.Pending.(domain.AwaitingEditDecision); waiting {
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeDecisionRequired,
			"event is recurring: set single_only to move this instance or the whole series")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"moved": res.Moved})
}

// SearchEvents godoc
// @Summary Search events
// @Description Case-insensitive match on title, description and location, limited to the week or month containing date.
// @Tags events
// @Produce json
// @Param q query string false "Search term"
// @Param view query string false "week or month"
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/events/search [get]
func (c *EventController) SearchEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := domain.CalendarView(q.Get("view"))
	if view == "" {
		view = domain.ViewMonth
	}
	if view != domain.ViewWeek && view != domain.ViewMonth {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "view must be week or month")
		return
	}
	current, err := dateParam(r, "date", c.Location)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	params := helpers.ParsePagination(r)

	events, total, err := c.Service.Search(r.Context(), domain.SearchQuery{
		Term:       q.Get("q"),
		View:       view,
		Current:    current,
		Pagination: params,
	})
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SearchEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Notifications godoc
// @Summary List due reminders
// @Description Events whose start is within their notification time from now.
// @Tags notifications
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the notifications"
// @Router /api/notifications [get]
func (c *EventController) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := c.Service.Notifications(r.Context(), time.Now().In(c.Location))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, notifications)
}
