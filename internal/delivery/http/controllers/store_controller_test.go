package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcalendar/internal/delivery/http/helpers"
	"eventcalendar/internal/domain"
)

func TestStoreController_ListEvents(t *testing.T) {
	t.Run("empty store is an empty list", func(t *testing.T) {
		ctrl := NewStoreController(testLogger, &fakeRepo{})
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/api/events", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"data":[],"error":null}`, rr.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		ctrl := NewStoreController(testLogger, &fakeRepo{err: errors.New("db down")})
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/api/events", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestStoreController_CreateEvent(t *testing.T) {
	repo := &fakeRepo{}
	ctrl := NewStoreController(testLogger, repo)
	rr := httptest.NewRecorder()

	ctrl.CreateEvent(rr, httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(validEventJSON)))

	require.Equal(t, http.StatusCreated, rr.Code)
	var got domain.Event
	decodeEnvelope(t, rr, &got)
	assert.Equal(t, "ev-new", got.ID)
	assert.Equal(t, "Standup", repo.lastEvent.Title)
}

func TestStoreController_UpdateAndDelete(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		fakeErr    error
		wantStatus int
	}{
		{name: "update", method: http.MethodPut, wantStatus: http.StatusOK},
		{name: "update missing", method: http.MethodPut, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "delete", method: http.MethodDelete, wantStatus: http.StatusOK},
		{name: "delete missing", method: http.MethodDelete, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{err: tt.fakeErr}
			ctrl := NewStoreController(testLogger, repo)
			rr := httptest.NewRecorder()
			if tt.method == http.MethodPut {
				req := httptest.NewRequest(tt.method, "/api/events/ev-9", bytes.NewBufferString(validEventJSON))
				req.SetPathValue("id", "ev-9")
				ctrl.UpdateEvent(rr, req)
			} else {
				req := httptest.NewRequest(tt.method, "/api/events/ev-9", nil)
				req.SetPathValue("id", "ev-9")
				ctrl.DeleteEvent(rr, req)
			}

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "ev-9", repo.lastID)
		})
	}
}

func TestStoreController_Batches(t *testing.T) {
	body := `{"events":[` + validEventJSON + `,` + validEventJSON + `]}`

	t.Run("create assigns ids", func(t *testing.T) {
		repo := &fakeRepo{}
		ctrl := NewStoreController(testLogger, repo)
		rr := httptest.NewRecorder()

		ctrl.CreateEventsBatch(rr, httptest.NewRequest(http.MethodPost, "/api/events-list", bytes.NewBufferString(body)))

		require.Equal(t, http.StatusCreated, rr.Code)
		var got []*domain.Event
		decodeEnvelope(t, rr, &got)
		require.Len(t, got, 2)
		assert.Equal(t, "batch-a", got[0].ID)
		assert.Equal(t, "batch-b", got[1].ID)
	})

	t.Run("update", func(t *testing.T) {
		repo := &fakeRepo{}
		ctrl := NewStoreController(testLogger, repo)
		rr := httptest.NewRecorder()

		ctrl.UpdateEventsBatch(rr, httptest.NewRequest(http.MethodPut, "/api/events-list", bytes.NewBufferString(body)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, repo.lastBatch, 2)
	})

	t.Run("invalid member rejects the batch", func(t *testing.T) {
		repo := &fakeRepo{}
		ctrl := NewStoreController(testLogger, repo)
		rr := httptest.NewRecorder()
		bad := `{"events":[` + validEventJSON + `,{"title":"","date":"2025-11-03","start_time":"09:00","end_time":"10:00"}]}`

		ctrl.CreateEventsBatch(rr, httptest.NewRequest(http.MethodPost, "/api/events-list", bytes.NewBufferString(bad)))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Nil(t, repo.lastBatch)
	})
}

func TestStoreController_Series(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		repo := &fakeRepo{}
		ctrl := NewStoreController(testLogger, repo)
		req := httptest.NewRequest(http.MethodPut, "/api/recurring-events/s-1",
			bytes.NewBufferString(`{"title":"Sync","description":"","location":"Room 2","category":"Work","notification_time":10}`))
		req.SetPathValue("seriesID", "s-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateSeries(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "s-1", repo.lastSeries)
		assert.Equal(t, domain.SeriesUpdate{Title: "Sync", Location: "Room 2", Category: "Work", NotificationTime: 10}, repo.lastFields)
	})

	t.Run("delete unknown series", func(t *testing.T) {
		repo := &fakeRepo{err: domain.ErrNotFound}
		ctrl := NewStoreController(testLogger, repo)
		req := httptest.NewRequest(http.MethodDelete, "/api/recurring-events/s-x", nil)
		req.SetPathValue("seriesID", "s-x")
		rr := httptest.NewRecorder()

		ctrl.DeleteSeries(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		env := decodeEnvelope(t, rr, nil)
		require.NotNil(t, env.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, env.Error.Code)
	})
}
