package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"market-service/internal/mocks"
	"market-service/internal/models"
	"market-service/internal/repositories"
)

func setupProductRouter(product *ProductHandler, sale *SaleHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/products", product.ListProducts)
	r.POST("/products", product.CreateProduct)
	r.GET("/products/:product_id", product.GetProduct)
	r.POST("/products/:product_id/fav", product.ToggleFavorite)
	r.POST("/products/:product_id/buy", sale.BuyProduct)
	r.GET("/users/me/favorites", product.ListFavorites)
	r.GET("/users/me/sales", sale.ListSales)
	return r
}

func TestCreateProductSuccess(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	router := setupProductRouter(NewProductHandler(productRepo), NewSaleHandler(new(mocks.SaleRepositoryMock), nil))

	productRepo.On("CreateProduct", mock.Anything, 1, "bike", 120, "barely used").
		Return(models.Product{ID: 2, SellerID: 1, Name: "bike", Price: 120, Description: "barely used"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"name":"bike","price":120,"description":"barely used"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	productRepo.AssertExpectations(t)
}

func TestCreateProductMissingName(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	router := setupProductRouter(NewProductHandler(productRepo), NewSaleHandler(new(mocks.SaleRepositoryMock), nil))

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"price":120}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	productRepo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListProductsDefaultsPage(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	router := setupProductRouter(NewProductHandler(productRepo), NewSaleHandler(new(mocks.SaleRepositoryMock), nil))

	productRepo.On("ListProducts", mock.Anything, 1, 1, productPageSize).Return([]models.ProductSummary{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/products?page=bad", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	productRepo.AssertExpectations(t)
}

func TestGetProductNotFound(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	router := setupProductRouter(NewProductHandler(productRepo), NewSaleHandler(new(mocks.SaleRepositoryMock), nil))

	productRepo.On("GetProduct", mock.Anything, 9, 1).Return(models.ProductSummary{}, repositories.ErrProductNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/products/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	productRepo.AssertExpectations(t)
}

func TestToggleFavorite(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	router := setupProductRouter(NewProductHandler(productRepo), NewSaleHandler(new(mocks.SaleRepositoryMock), nil))

	productRepo.On("ToggleFavorite", mock.Anything, 3, 1).Return(true, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/products/3/fav", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["faved"])
	productRepo.AssertExpectations(t)
}

func TestBuyOwnProduct(t *testing.T) {
	saleRepo := new(mocks.SaleRepositoryMock)
	router := setupProductRouter(NewProductHandler(new(mocks.ProductRepositoryMock)), NewSaleHandler(saleRepo, nil))

	saleRepo.On("CreateSale", mock.Anything, 3, 1).Return(models.Sale{}, repositories.ErrOwnProduct).Once()

	req := httptest.NewRequest(http.MethodPost, "/products/3/buy", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	saleRepo.AssertExpectations(t)
}

func TestBuyAlreadySold(t *testing.T) {
	saleRepo := new(mocks.SaleRepositoryMock)
	router := setupProductRouter(NewProductHandler(new(mocks.ProductRepositoryMock)), NewSaleHandler(saleRepo, nil))

	saleRepo.On("CreateSale", mock.Anything, 3, 1).Return(models.Sale{}, repositories.ErrProductSold).Once()

	req := httptest.NewRequest(http.MethodPost, "/products/3/buy", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	saleRepo.AssertExpectations(t)
}

func TestBuyProductSuccess(t *testing.T) {
	saleRepo := new(mocks.SaleRepositoryMock)
	router := setupProductRouter(NewProductHandler(new(mocks.ProductRepositoryMock)), NewSaleHandler(saleRepo, nil))

	saleRepo.On("CreateSale", mock.Anything, 3, 1).Return(models.Sale{ID: 1, ProductID: 3, SellerID: 2, BuyerID: 1}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/products/3/buy", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	saleRepo.AssertExpectations(t)
}
