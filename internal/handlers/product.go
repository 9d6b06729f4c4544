package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"market-service/internal/repositories"
)

const productPageSize = 10

// ProductHandler manages listing and favorite endpoints.
type ProductHandler struct {
	productRepo repositories.ProductRepository
}

// NewProductHandler builds a ProductHandler.
func NewProductHandler(productRepo repositories.ProductRepository) *ProductHandler {
	return &ProductHandler{productRepo: productRepo}
}

// CreateProduct stores a new listing for the authenticated seller.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Price       int    `json:"price" binding:"required,min=0"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt("userID")
	product, err := h.productRepo.CreateProduct(c.Request.Context(), userID, req.Name, req.Price, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "product": product})
}

// ListProducts returns listings newest first, paged.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	userID := c.GetInt("userID")
	products, err := h.productRepo.ListProducts(c.Request.Context(), userID, page, productPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "products": products})
}

// GetProduct returns one listing with favorite info for the viewer.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	userID := c.GetInt("userID")
	product, err := h.productRepo.GetProduct(c.Request.Context(), productID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "product": product})
}

// ToggleFavorite flips the caller's favorite on a product.
func (h *ProductHandler) ToggleFavorite(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	userID := c.GetInt("userID")
	faved, err := h.productRepo.ToggleFavorite(c.Request.Context(), productID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "faved": faved})
}

// ListFavorites returns the caller's faved listings.
func (h *ProductHandler) ListFavorites(c *gin.Context) {
	userID := c.GetInt("userID")

	products, err := h.productRepo.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "products": products})
}
