package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"market-service/internal/repositories"
)

// ReviewHandler manages seller review endpoints.
type ReviewHandler struct {
	reviewRepo repositories.ReviewRepository
}

// NewReviewHandler builds a ReviewHandler.
func NewReviewHandler(reviewRepo repositories.ReviewRepository) *ReviewHandler {
	return &ReviewHandler{reviewRepo: reviewRepo}
}

// CreateReview stores the caller's review of a seller.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req struct {
		SellerID int    `json:"seller_id" binding:"required"`
		Score    int    `json:"score" binding:"required,min=1,max=5"`
		Body     string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt("userID")
	if req.SellerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot review yourself"})
		return
	}

	review, err := h.reviewRepo.CreateReview(c.Request.Context(), req.SellerID, userID, req.Score, req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "review": review})
}

// ListSellerReviews returns reviews received by a seller.
func (h *ReviewHandler) ListSellerReviews(c *gin.Context) {
	sellerID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	reviews, err := h.reviewRepo.ListReviewsForSeller(c.Request.Context(), sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "reviews": reviews})
}
