package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/lab-utils/internal/model"
	"github.com/BuzzLyutic/lab-utils/internal/repo"
	"github.com/BuzzLyutic/lab-utils/internal/service"
	"github.com/BuzzLyutic/lab-utils/internal/testutil"
)

func setupPageHandler(t *testing.T) (*PageHandler, *testutil.MockPageRepository) {
	t.Helper()
	mockRepo := new(testutil.MockPageRepository)
	return NewPageHandler(service.NewPageService(mockRepo), zap.NewNop()), mockRepo
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPageHandler_Enqueue(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*testutil.MockPageRepository)
		wantCode  int
		checkResp func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "single url",
			body: `{"urls":["http://a.test"]}`,
			setupMock: func(m *testutil.MockPageRepository) {
				m.On("Enqueue", mock.Anything, []string{"http://a.test"}).
					Return([]model.Page{{ID: 5, URL: "http://a.test", Status: model.PageStatusPending}}, nil)
			},
			wantCode: http.StatusCreated,
			checkResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "/api/pages/5", w.Header().Get("Location"))
				var pages []model.Page
				require.NoError(t, json.NewDecoder(w.Body).Decode(&pages))
				require.Len(t, pages, 1)
				assert.Equal(t, model.PageStatusPending, pages[0].Status)
			},
		},
		{
			name:      "empty body",
			body:      "",
			setupMock: func(m *testutil.MockPageRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "invalid url",
			body:      `{"urls":["nope"]}`,
			setupMock: func(m *testutil.MockPageRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository failure",
			body: `{"urls":["http://a.test"]}`,
			setupMock: func(m *testutil.MockPageRepository) {
				m.On("Enqueue", mock.Anything, mock.Anything).Return([]model.Page(nil), errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockRepo := setupPageHandler(t)
			tt.setupMock(mockRepo)

			w := postJSON(t, handler.Enqueue, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.checkResp != nil {
				tt.checkResp(t, w)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPageHandler_Get(t *testing.T) {
	handler, mockRepo := setupPageHandler(t)
	mockRepo.On("Get", mock.Anything, int64(1)).Return(model.Page{ID: 1, URL: "http://a.test"}, nil)
	mockRepo.On("Get", mock.Anything, int64(99999)).Return(model.Page{}, repo.ErrorNotFound)

	t.Run("existing page", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Get(w, withID(httptest.NewRequest(http.MethodGet, "/api/pages/1", nil), "1"))

		assert.Equal(t, http.StatusOK, w.Code)
		var page model.Page
		require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
		assert.Equal(t, int64(1), page.ID)
	})

	t.Run("missing page", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Get(w, withID(httptest.NewRequest(http.MethodGet, "/api/pages/99999", nil), "99999"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Get(w, withID(httptest.NewRequest(http.MethodGet, "/api/pages/abc", nil), "abc"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPageHandler_List(t *testing.T) {
	handler, mockRepo := setupPageHandler(t)
	status := model.PageStatusFetched
	mockRepo.On("List", mock.Anything, model.PageFilter{Status: &status}, 5).
		Return([]model.Page{{ID: 1, Status: status}}, nil)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/pages?status=fetched&limit=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var pages []model.Page
	require.NoError(t, json.NewDecoder(w.Body).Decode(&pages))
	assert.Len(t, pages, 1)

	w = httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/pages?status=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPageHandler_Stats(t *testing.T) {
	handler, mockRepo := setupPageHandler(t)
	mockRepo.On("Stats", mock.Anything).Return(model.PageStats{Pending: 1, Failed: 2, Total: 3}, nil)

	w := httptest.NewRecorder()
	handler.Stats(w, httptest.NewRequest(http.MethodGet, "/api/pages/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var stats model.PageStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, model.PageStats{Pending: 1, Failed: 2, Total: 3}, stats)
}
