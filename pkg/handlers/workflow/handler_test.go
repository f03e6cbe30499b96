package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/project-atlas/pkg/models/api"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) Start(ctx context.Context, profile, projectID string) (*domain.Sync, error) {
	args := m.Called(ctx, profile, projectID)
	s, _ := args.Get(0).(*domain.Sync)
	return s, args.Error(1)
}

func (m *mockController) Cancel(ctx context.Context, profile, projectID string) error {
	return m.Called(ctx, profile, projectID).Error(0)
}

func (m *mockController) List(ctx context.Context) ([]domain.Sync, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]domain.Sync)
	return res, args.Error(1)
}

func setupRouter(ctrl *mockController) http.Handler {
	r := chi.NewRouter()
	NewHandler(ctrl).Routes(r)
	return r
}

func TestHandler_StartSync(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("Start", mock.Anything, "local", "P1").Return(&domain.Sync{
		ID:        "sync-1",
		Profile:   "local",
		ProjectID: "P1",
		Status:    domain.SyncStatusRunning,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil).Once()
	ctrl.On("Start", mock.Anything, "local", "P1").Return(nil, eris.Wrap(domain.ErrAlreadyRunning, "sync local/P1"))
	router := setupRouter(ctrl)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sync/local/P1", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)

	var got api.Sync
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "sync-1", got.ID)
	assert.Equal(t, "running", got.Status)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sync/local/P1", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_CancelSync(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("Cancel", mock.Anything, "local", "P1").Return(nil)
	ctrl.On("Cancel", mock.Anything, "local", "P2").Return(eris.Wrap(domain.ErrNotFound, "sync not running"))
	router := setupRouter(ctrl)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/sync/local/P1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/sync/local/P2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ListSyncs(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("List", mock.Anything).Return([]domain.Sync{{ID: "sync-1", Status: domain.SyncStatusCancelled}}, nil)

	rec := httptest.NewRecorder()
	setupRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sync", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []api.Sync
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "cancelled", got[0].Status)
}
