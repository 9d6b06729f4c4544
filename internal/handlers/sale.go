package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"market-service/internal/repositories"
	"market-service/internal/telemetry"
)

// SaleHandler manages purchase endpoints.
type SaleHandler struct {
	saleRepo repositories.SaleRepository
	audit    *telemetry.AuditEmitter
}

// NewSaleHandler builds a SaleHandler.
func NewSaleHandler(saleRepo repositories.SaleRepository, audit *telemetry.AuditEmitter) *SaleHandler {
	return &SaleHandler{saleRepo: saleRepo, audit: audit}
}

// BuyProduct records a purchase by the authenticated user.
func (h *SaleHandler) BuyProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	userID := c.GetInt("userID")
	sale, err := h.saleRepo.CreateSale(c.Request.Context(), productID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, repositories.ErrOwnProduct):
			h.emitAudit(c, "WARN", "attempt to buy own product")
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot buy own product"})
		case errors.Is(err, repositories.ErrProductSold):
			c.JSON(http.StatusConflict, gin.H{"error": "product already sold"})
		default:
			h.emitAudit(c, "ERROR", "could not record sale")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record sale"})
		}
		return
	}

	h.emitAudit(c, "INFO", "product purchased")
	c.JSON(http.StatusCreated, gin.H{"ok": true, "sale": sale})
}

// ListSales returns the caller's completed sales.
func (h *SaleHandler) ListSales(c *gin.Context) {
	userID := c.GetInt("userID")

	sales, err := h.saleRepo.ListSales(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "sales": sales})
}

// ListPurchases returns the caller's purchases.
func (h *SaleHandler) ListPurchases(c *gin.Context) {
	userID := c.GetInt("userID")

	purchases, err := h.saleRepo.ListPurchases(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load purchases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "purchases": purchases})
}

func (h *SaleHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
