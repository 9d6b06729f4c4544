package ws

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"market-service/internal/auth"
	"market-service/internal/mocks"
)

func setupWSRouter(handler *RoomWebSocketHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/chats/:room_id", handler.Handle)
	return r
}

func TestHandleInvalidRoomID(t *testing.T) {
	handler := NewRoomWebSocketHandler(NewRegistry(), new(mocks.RoomRepositoryMock), auth.NewManager("test-secret", "market-service"))
	router := setupWSRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/ws/chats/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMissingToken(t *testing.T) {
	handler := NewRoomWebSocketHandler(NewRegistry(), new(mocks.RoomRepositoryMock), auth.NewManager("test-secret", "market-service"))
	router := setupWSRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/ws/chats/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleNonParticipant(t *testing.T) {
	tokens := auth.NewManager("test-secret", "market-service")
	roomRepo := new(mocks.RoomRepositoryMock)
	handler := NewRoomWebSocketHandler(NewRegistry(), roomRepo, tokens)
	router := setupWSRouter(handler)

	token, err := tokens.Issue(9, time.Minute)
	require.NoError(t, err)
	roomRepo.On("IsParticipant", mock.Anything, 5, 9).Return(false, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/ws/chats/5", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	roomRepo.AssertExpectations(t)
}
