package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type titleRequest struct {
	Title string `json:"title"`
}

func (r *titleRequest) Validate() []string {
	if r.Title == "" {
		return []string{"title is required"}
	}
	return nil
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		ok      bool
		wantMsg string
	}{
		{"valid", `{"title":"Review"}`, true, ""},
		{"empty body", ``, false, "request body is required"},
		{"unknown field", `{"title":"x","owner":"me"}`, false, "unknown field"},
		{"validation error", `{"title":""}`, false, "title is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest titleRequest

			ok := DecodeAndValidate(rr, req, &dest)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, "Review", dest.Title)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			apiErr := decodeError(t, rr)
			assert.Equal(t, ErrCodeBadRequest, apiErr.Code)
			assert.Contains(t, apiErr.Message, tt.wantMsg)
		})
	}
}

func TestWriteJSONSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONSuccess(rr, http.StatusCreated, map[string]string{"id": "ev-1"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"ev-1"},"error":null}`, rr.Body.String())
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		page, size int
	}{
		{"", DefaultPage, DefaultPageSize},
		{"page=3&page_size=5", 3, 5},
		{"page=0&page_size=-1", DefaultPage, DefaultPageSize},
		{"page_size=1000", DefaultPage, MaxPageSize},
		{"page=abc", DefaultPage, DefaultPageSize},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		p := ParsePagination(req)
		assert.Equal(t, tt.page, p.Page, tt.query)
		assert.Equal(t, tt.size, p.PageSize, tt.query)
	}
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 10, Total: 21, TotalPages: 3}, NewPaginationMeta(2, 10, 21))
}
