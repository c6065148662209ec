package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventcalendar/internal/delivery/http/controllers"
	"eventcalendar/internal/delivery/http/helpers"
	"eventcalendar/internal/metrics"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(events *controllers.EventController, calendar *controllers.CalendarController, store *controllers.StoreController, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Calendar core
	mux.HandleFunc("POST /api/events/submit", events.SubmitEvent)
	mux.HandleFunc("POST /api/events/overlaps", events.FindOverlaps)
	mux.HandleFunc("GET /api/events/search", events.SearchEvents)
	mux.HandleFunc("GET /api/events/{id}", events.GetEvent)
	mux.HandleFunc("POST /api/events/{id}/move", events.MoveEvent)
	mux.HandleFunc("PUT /api/events/{id}/recurring", events.EditRecurring)
	mux.HandleFunc("DELETE /api/events/{id}/recurring", events.DeleteRecurring)
	mux.HandleFunc("GET /api/notifications", events.Notifications)

	// Views, iCalendar and settings
	mux.HandleFunc("GET /api/calendar/week", calendar.Week)
	mux.HandleFunc("GET /api/calendar/month", calendar.Month)
	mux.HandleFunc("GET /api/events.ics", calendar.ExportICS)
	mux.HandleFunc("POST /api/events/import", calendar.ImportICS)
	mux.HandleFunc("GET /api/settings", calendar.GetSettings)

	// Event store
	mux.HandleFunc("GET /api/events", store.ListEvents)
	mux.HandleFunc("POST /api/events", store.CreateEvent)
	mux.HandleFunc("PUT /api/events/{id}", store.UpdateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", store.DeleteEvent)
	mux.HandleFunc("POST /api/events-list", store.CreateEventsBatch)
	mux.HandleFunc("PUT /api/events-list", store.UpdateEventsBatch)
	mux.HandleFunc("PUT /api/recurring-events/{seriesID}", store.UpdateSeries)
	mux.HandleFunc("DELETE /api/recurring-events/{seriesID}", store.DeleteSeries)

	// Operations
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", m.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
