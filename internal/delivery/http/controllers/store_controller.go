package controllers

import (
	"log/slog"
	"net/http"

	"eventcalendar/internal/delivery/http/helpers"
	"eventcalendar/internal/domain"
)

// EventsListRequest is the body of the batch endpoints.
type EventsListRequest struct {
	Events []*domain.Event `json:"events"`
}

// Validate implements Validator.
func (e *EventsListRequest) Validate() []string {
	var errs []string
	for _, ev := range e.Events {
		if ev == nil {
			errs = append(errs, "events must not contain null")
			continue
		}
		errs = append(errs, ev.Validate()...)
	}
	return errs
}

// SeriesUpdateRequest carries the metadata written to every instance of a series.
type SeriesUpdateRequest domain.SeriesUpdate

// Validate implements Validator.
func (s *SeriesUpdateRequest) Validate() []string {
	var errs []string
	if s.Title == "" {
		errs = append(errs, "title is required")
	}
	if s.NotificationTime < 0 {
		errs = append(errs, "notification_time must not be negative")
	}
	return errs
}

// StoreController exposes the event store over the same routes the remote
// backend client speaks, so one instance can back another.
type StoreController struct {
	Logger *slog.Logger
	Repo   domain.EventRepository
}

func NewStoreController(logger *slog.Logger, repo domain.EventRepository) *StoreController {
	return &StoreController{
		Logger: logger,
		Repo:   repo,
	}
}

// ListEvents godoc
// @Summary List all events
// @Tags store
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the events"
// @Router /api/events [get]
func (c *StoreController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Repo.ListEvents(r.Context())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Store one event
// @Tags store
// @Accept json
// @Produce json
// @Param event body domain.Event true "Event"
// @Success 201 {object} helpers.APIResponse "data contains the stored event with its id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/events [post]
func (c *StoreController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var e domain.Event
	if !helpers.DecodeAndValidate(w, r, &e) {
		return
	}
	created, err := c.Repo.CreateEvent(r.Context(), &e)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// UpdateEvent godoc
// @Summary Replace one event
// @Tags store
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param event body domain.Event true "Event"
// @Success 200 {object} helpers.APIResponse "data contains the stored event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{id} [put]
func (c *StoreController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var e domain.Event
	if !helpers.DecodeAndValidate(w, r, &e) {
		return
	}
	e.ID = r.PathValue("id")
	if err := c.Repo.UpdateEvent(r.Context(), e.ID, &e); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &e)
}

// DeleteEvent godoc
// @Summary Delete one event
// @Tags store
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{id} [delete]
func (c *StoreController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := c.Repo.DeleteEvent(r.Context(), id); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"id": id})
}

// CreateEventsBatch godoc
// @Summary Store several events atomically
// @Tags store
// @Accept json
// @Produce json
// @Param request body EventsListRequest true "Events"
// @Success 201 {object} helpers.APIResponse "data contains the stored events with their ids"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/events-list [post]
func (c *StoreController) CreateEventsBatch(w http.ResponseWriter, r *http.Request) {
	var req EventsListRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Repo.CreateEventsBatch(r.Context(), req.Events); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if req.Events == nil {
		req.Events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, req.Events)
}

// UpdateEventsBatch godoc
// @Summary Replace several events atomically
// @Tags store
// @Accept json
// @Produce json
// @Param request body EventsListRequest true "Events"
// @Success 200 {object} helpers.APIResponse "data contains the stored events"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events-list [put]
func (c *StoreController) UpdateEventsBatch(w http.ResponseWriter, r *http.Request) {
	var req EventsListRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Repo.UpdateEventsBatch(r.Context(), req.Events); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if req.Events == nil {
		req.Events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, req.Events)
}

// UpdateSeries godoc
// @Summary Update the metadata of a series
// @Tags store
// @Accept json
// @Produce json
// @Param seriesID path string true "Series ID"
// @Param request body SeriesUpdateRequest true "Fields to set"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/recurring-events/{seriesID} [put]
func (c *StoreController) UpdateSeries(w http.ResponseWriter, r *http.Request) {
	var req SeriesUpdateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	seriesID := r.PathValue("seriesID")
	if err := c.Repo.UpdateSeriesBySeriesID(r.Context(), seriesID, domain.SeriesUpdate(req)); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"series_id": seriesID})
}

// DeleteSeries godoc
// @Summary Delete every instance of a series
// @Tags store
// @Produce json
// @Param seriesID path string true "Series ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/recurring-events/{seriesID} [delete]
func (c *StoreController) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	seriesID := r.PathValue("seriesID")
	if err := c.Repo.DeleteSeriesBySeriesID(r.Context(), seriesID); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"series_id": seriesID})
}
