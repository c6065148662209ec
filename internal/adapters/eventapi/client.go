// Package eventapi persists events through the REST facade of a remote
// calendar backend.
package eventapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"eventcalendar/internal/domain"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type eventsListBody struct {
	Events []*domain.Event `json:"events"`
}

type client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns an EventRepository backed by the API at baseURL
// (e.g. "http://calendar.internal:8080").
func NewClient(baseURL string, httpClient *http.Client) domain.EventRepository {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// do sends body as JSON and decodes the envelope's data into out when out is
// non-nil. 404 maps to domain.ErrNotFound and 400 to domain.ErrInvalidEvent.
func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", domain.ErrInvalidEvent, msg)
		default:
			return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, msg)
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode data of %s %s: %w", method, path, err)
		}
	}
	return nil
}

func (c *client) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *client) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	var created domain.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", e, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *client) UpdateEvent(ctx context.Context, id string, e *domain.Event) error {
	return c.do(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), e, nil)
}

func (c *client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, nil)
}

// CreateEventsBatch copies the server-assigned IDs back onto events.
func (c *client) CreateEventsBatch(ctx context.Context, events []*domain.Event) error {
	var created []*domain.Event
	if err := c.do(ctx, http.MethodPost, "/api/events-list", eventsListBody{Events: events}, &created); err != nil {
		return err
	}
	if len(created) == len(events) {
		for i, e := range created {
			events[i].ID = e.ID
		}
	}
	return nil
}

func (c *client) UpdateEventsBatch(ctx context.Context, events []*domain.Event) error {
	return c.do(ctx, http.MethodPut, "/api/events-list", eventsListBody{Events: events}, nil)
}

func (c *client) UpdateSeriesBySeriesID(ctx context.Context, seriesID string, fields domain.SeriesUpdate) error {
	return c.do(ctx, http.MethodPut, "/api/recurring-events/"+url.PathEscape(seriesID), fields, nil)
}

func (c *client) DeleteSeriesBySeriesID(ctx context.Context, seriesID string) error {
	return c.do(ctx, http.MethodDelete, "/api/recurring-events/"+url.PathEscape(seriesID), nil, nil)
}
