package startups

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"launchrate/pkg/access"
	"launchrate/pkg/auth"
	"launchrate/pkg/response"
)

type mockStartupService struct {
	mock.Mock
}

func (m *mockStartupService) CreateStartup(ctx context.Context, input Startup) (Startup, error) {
	args := m.Called(ctx, input)
	s, _ := args.Get(0).(Startup)
	return s, args.Error(1)
}

func (m *mockStartupService) UpdateStartup(ctx context.Context, actorUUID string, input Startup) (Startup, error) {
	args := m.Called(ctx, actorUUID, input)
	s, _ := args.Get(0).(Startup)
	return s, args.Error(1)
}

func (m *mockStartupService) DeleteStartup(ctx context.Context, actorUUID string, id int64) error {
	args := m.Called(ctx, actorUUID, id)
	return args.Error(0)
}

func (m *mockStartupService) GetStartupByID(ctx context.Context, id int64) (Startup, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(Startup)
	return s, args.Error(1)
}

func (m *mockStartupService) ListStartupsByOwner(ctx context.Context, ownerUUID string) ([]Startup, error) {
	args := m.Called(ctx, ownerUUID)
	s, _ := args.Get(0).([]Startup)
	return s, args.Error(1)
}

func setupStartupRouter(service StartupService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(auth.Optional())
	NewStartupHandler(service).RegisterRoutes(router)
	return router
}

func bearerToken(t *testing.T, userUUID string) string {
	t.Helper()
	token, err := auth.SignToken(userUUID, "test@example.com", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestStartupHandler_Create(t *testing.T) {
	service := new(mockStartupService)
	router := setupStartupRouter(service)

	expected := Startup{OwnerUUID: "owner-uuid", Name: "Acme", Visibility: VisibilityPublic}
	service.On("CreateStartup", mock.Anything, mock.MatchedBy(func(s Startup) bool {
		return s.OwnerUUID == "owner-uuid" && s.Name == "Acme"
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]any{"name": "Acme"})
	req := httptest.NewRequest(http.MethodPost, "/startups", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "owner-uuid"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	service.AssertExpectations(t)
}

func TestStartupHandler_Create_RequiresAuth(t *testing.T) {
	service := new(mockStartupService)
	router := setupStartupRouter(service)

	body, _ := json.Marshal(map[string]any{"name": "Acme"})
	req := httptest.NewRequest(http.MethodPost, "/startups", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	service.AssertNotCalled(t, "CreateStartup", mock.Anything, mock.Anything)
}

func TestStartupHandler_Create_MissingName(t *testing.T) {
	service := new(mockStartupService)
	router := setupStartupRouter(service)

	body, _ := json.Marshal(map[string]any{"summary": "no name"})
	req := httptest.NewRequest(http.MethodPost, "/startups", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "owner-uuid"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartupHandler_Update_NotOwner(t *testing.T) {
	service := new(mockStartupService)
	router := setupStartupRouter(service)

	service.On("UpdateStartup", mock.Anything, "stranger-uuid", mock.Anything).Return(Startup{}, access.ErrNotOwner)

	body, _ := json.Marshal(map[string]any{"name": "Acme"})
	req := httptest.NewRequest(http.MethodPut, "/startups/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "stranger-uuid"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestStartupHandler_Update_NotFound(t *testing.T) {
	service := new(mockStartupService)
	router := setupStartupRouter(service)

	service.On("UpdateStartup", mock.Anything, "owner-uuid", mock.Anything).Return(Startup{}, ErrStartupNotFound)

	body, _ := json.Marshal(map[string]any{"name": "Gone"})
	req := httptest.NewRequest(http.MethodPut, "/startups/404", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "owner-uuid"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartupHandler_Delete(t *testing.T) {
	service := new(mockStartupService)
	router := setupStartupRouter(service)

	service.On("DeleteStartup", mock.Anything, "owner-uuid", int64(7)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/startups/7", nil)
	req.Header.Set("Authorization", bearerToken(t, "owner-uuid"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestStartupHandler_Get_BadID(t *testing.T) {
	service := new(mockStartupService)
	router := setupStartupRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/startups/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "GetStartupByID", mock.Anything, mock.Anything)
}

func TestStartupHandler_Get(t *testing.T) {
	service := new(mockStartupService)
	router := setupStartupRouter(service)

	service.On("GetStartupByID", mock.Anything, int64(7)).Return(Startup{ID: 7, Name: "Acme"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/startups/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "startup fetched", resp.Message)
}
