package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"market-service/internal/mocks"
	"market-service/internal/models"
)

func setupReviewRouter(handler *ReviewHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/reviews", handler.CreateReview)
	r.GET("/users/:user_id/reviews", handler.ListSellerReviews)
	return r
}

func TestCreateReviewSuccess(t *testing.T) {
	reviewRepo := new(mocks.ReviewRepositoryMock)
	router := setupReviewRouter(NewReviewHandler(reviewRepo))

	reviewRepo.On("CreateReview", mock.Anything, 2, 1, 5, "great seller").
		Return(models.Review{ID: 1, SellerID: 2, ReviewerID: 1, Score: 5, Body: "great seller"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(`{"seller_id":2,"score":5,"body":"great seller"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReviewSelf(t *testing.T) {
	reviewRepo := new(mocks.ReviewRepositoryMock)
	router := setupReviewRouter(NewReviewHandler(reviewRepo))

	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(`{"seller_id":1,"score":4}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	reviewRepo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReviewScoreOutOfRange(t *testing.T) {
	reviewRepo := new(mocks.ReviewRepositoryMock)
	router := setupReviewRouter(NewReviewHandler(reviewRepo))

	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(`{"seller_id":2,"score":6}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	reviewRepo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListSellerReviews(t *testing.T) {
	reviewRepo := new(mocks.ReviewRepositoryMock)
	router := setupReviewRouter(NewReviewHandler(reviewRepo))

	reviewRepo.On("ListReviewsForSeller", mock.Anything, 2).Return([]models.Review{{ID: 1, SellerID: 2, ReviewerID: 3, Score: 4}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users/2/reviews", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	reviewRepo.AssertExpectations(t)
}
