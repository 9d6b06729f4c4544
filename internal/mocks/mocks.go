package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"market-service/internal/models"
	"market-service/internal/repositories"
)

type RoomRepositoryMock struct {
	mock.Mock
}

func (m *RoomRepositoryMock) CreateOrGetRoom(ctx context.Context, productID int, buyerID int) (models.Room, error) {
	args := m.Called(ctx, productID, buyerID)
	var room models.Room
	if val := args.Get(0); val != nil {
		room = val.(models.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepositoryMock) GetRoom(ctx context.Context, roomID int) (models.Room, error) {
	args := m.Called(ctx, roomID)
	var room models.Room
	if val := args.Get(0); val != nil {
		room = val.(models.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepositoryMock) IsParticipant(ctx context.Context, roomID int, userID int) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *RoomRepositoryMock) ListRoomsForUser(ctx context.Context, userID int) ([]models.RoomSummary, error) {
	args := m.Called(ctx, userID)
	var list []models.RoomSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.RoomSummary)
	}
	return list, args.Error(1)
}

func (m *RoomRepositoryMock) SetRoomHead(ctx context.Context, roomID int, messageID int) error {
	args := m.Called(ctx, roomID, messageID)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, roomID int, senderID int, body string) (models.Message, error) {
	args := m.Called(ctx, roomID, senderID, body)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListMessages(ctx context.Context, roomID int) ([]models.Message, error) {
	args := m.Called(ctx, roomID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	args := m.Called(ctx, messageID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) MarkRead(ctx context.Context, roomID int, readerID int) error {
	args := m.Called(ctx, roomID, readerID)
	return args.Error(0)
}

type ProductRepositoryMock struct {
	mock.Mock
}

func (m *ProductRepositoryMock) CreateProduct(ctx context.Context, sellerID int, name string, price int, description string) (models.Product, error) {
	args := m.Called(ctx, sellerID, name, price, description)
	var product models.Product
	if val := args.Get(0); val != nil {
		product = val.(models.Product)
	}
	return product, args.Error(1)
}

func (m *ProductRepositoryMock) GetProduct(ctx context.Context, productID int, viewerID int) (models.ProductSummary, error) {
	args := m.Called(ctx, productID, viewerID)
	var product models.ProductSummary
	if val := args.Get(0); val != nil {
		product = val.(models.ProductSummary)
	}
	return product, args.Error(1)
}

func (m *ProductRepositoryMock) ListProducts(ctx context.Context, viewerID int, page int, limit int) ([]models.ProductSummary, error) {
	args := m.Called(ctx, viewerID, page, limit)
	var products []models.ProductSummary
	if val := args.Get(0); val != nil {
		products = val.([]models.ProductSummary)
	}
	return products, args.Error(1)
}

func (m *ProductRepositoryMock) ToggleFavorite(ctx context.Context, productID int, userID int) (bool, error) {
	args := m.Called(ctx, productID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepositoryMock) ListFavorites(ctx context.Context, userID int) ([]models.ProductSummary, error) {
	args := m.Called(ctx, userID)
	var products []models.ProductSummary
	if val := args.Get(0); val != nil {
		products = val.([]models.ProductSummary)
	}
	return products, args.Error(1)
}

type SaleRepositoryMock struct {
	mock.Mock
}

func (m *SaleRepositoryMock) CreateSale(ctx context.Context, productID int, buyerID int) (models.Sale, error) {
	args := m.Called(ctx, productID, buyerID)
	var sale models.Sale
	if val := args.Get(0); val != nil {
		sale = val.(models.Sale)
	}
	return sale, args.Error(1)
}

func (m *SaleRepositoryMock) ListSales(ctx context.Context, sellerID int) ([]models.Sale, error) {
	args := m.Called(ctx, sellerID)
	var sales []models.Sale
	if val := args.Get(0); val != nil {
		sales = val.([]models.Sale)
	}
	return sales, args.Error(1)
}

func (m *SaleRepositoryMock) ListPurchases(ctx context.Context, buyerID int) ([]models.Sale, error) {
	args := m.Called(ctx, buyerID)
	var sales []models.Sale
	if val := args.Get(0); val != nil {
		sales = val.([]models.Sale)
	}
	return sales, args.Error(1)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

func (m *ReviewRepositoryMock) CreateReview(ctx context.Context, sellerID int, reviewerID int, score int, body string) (models.Review, error) {
	args := m.Called(ctx, sellerID, reviewerID, score, body)
	var review models.Review
	if val := args.Get(0); val != nil {
		review = val.(models.Review)
	}
	return review, args.Error(1)
}

func (m *ReviewRepositoryMock) ListReviewsForSeller(ctx context.Context, sellerID int) ([]models.Review, error) {
	args := m.Called(ctx, sellerID)
	var reviews []models.Review
	if val := args.Get(0); val != nil {
		reviews = val.([]models.Review)
	}
	return reviews, args.Error(1)
}

var _ repositories.RoomRepository = (*RoomRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ repositories.ProductRepository = (*ProductRepositoryMock)(nil)
var _ repositories.SaleRepository = (*SaleRepositoryMock)(nil)
var _ repositories.ReviewRepository = (*ReviewRepositoryMock)(nil)
