package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"market-service/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository abstracts listing and favorite persistence.
type ProductRepository interface {
	CreateProduct(ctx context.Context, sellerID int, name string, price int, description string) (models.Product, error)
	GetProduct(ctx context.Context, productID int, viewerID int) (models.ProductSummary, error)
	ListProducts(ctx context.Context, viewerID int, page int, limit int) ([]models.ProductSummary, error)
	ToggleFavorite(ctx context.Context, productID int, userID int) (bool, error)
	ListFavorites(ctx context.Context, userID int) ([]models.ProductSummary, error)
}

// ProductRepo is a sqlx implementation of ProductRepository.
type ProductRepo struct {
	db *sqlx.DB
}

// NewProductRepo constructs a ProductRepo.
func NewProductRepo(db *sqlx.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// CreateProduct stores a new listing.
func (r *ProductRepo) CreateProduct(ctx context.Context, sellerID int, name string, price int, description string) (models.Product, error) {
	var product models.Product
	err := r.db.QueryRowxContext(ctx, `INSERT INTO products (seller_id, name, price, description)
        VALUES ($1, $2, $3, $4)
        RETURNING id, seller_id, name, price, description, sold, created_at`, sellerID, name, price, description).
		StructScan(&product)
	return product, err
}

// GetProduct fetches one listing with favorite info for the viewer.
func (r *ProductRepo) GetProduct(ctx context.Context, productID int, viewerID int) (models.ProductSummary, error) {
	var product models.ProductSummary
	query := `SELECT p.id, p.seller_id, p.name, p.price, p.description, p.sold, p.created_at,
            (SELECT COUNT(*) FROM favorites f WHERE f.product_id = p.id) AS fav_count,
            EXISTS(SELECT 1 FROM favorites f WHERE f.product_id = p.id AND f.user_id=$2) AS faved
        FROM products p WHERE p.id=$1`
	err := r.db.GetContext(ctx, &product, query, productID, viewerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProductSummary{}, ErrProductNotFound
	}
	return product, err
}

// ListProducts returns listings newest first, paged.
func (r *ProductRepo) ListProducts(ctx context.Context, viewerID int, page int, limit int) ([]models.ProductSummary, error) {
	if page < 1 {
		page = 1
	}
	query := `SELECT p.id, p.seller_id, p.name, p.price, p.description, p.sold, p.created_at,
            (SELECT COUNT(*) FROM favorites f WHERE f.product_id = p.id) AS fav_count,
            EXISTS(SELECT 1 FROM favorites f WHERE f.product_id = p.id AND f.user_id=$1) AS faved
        FROM products p
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT $2 OFFSET $3`
	var products []models.ProductSummary
	err := r.db.SelectContext(ctx, &products, query, viewerID, limit, (page-1)*limit)
	return products, err
}

// ToggleFavorite flips the user's favorite on a product and reports the
// resulting state (true when the product is now faved).
func (r *ProductRepo) ToggleFavorite(ctx context.Context, productID int, userID int) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`, productID); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrProductNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE product_id=$1 AND user_id=$2`, productID, userID)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO favorites (product_id, user_id) VALUES ($1, $2)
        ON CONFLICT (product_id, user_id) DO NOTHING`, productID, userID)
	return true, err
}

// ListFavorites returns the user's faved listings, newest fav first.
func (r *ProductRepo) ListFavorites(ctx context.Context, userID int) ([]models.ProductSummary, error) {
	query := `SELECT p.id, p.seller_id, p.name, p.price, p.description, p.sold, p.created_at,
            (SELECT COUNT(*) FROM favorites fc WHERE fc.product_id = p.id) AS fav_count,
            TRUE AS faved
        FROM favorites f
        JOIN products p ON p.id = f.product_id
        WHERE f.user_id=$1
        ORDER BY f.created_at DESC`
	var products []models.ProductSummary
	err := r.db.SelectContext(ctx, &products, query, userID)
	return products, err
}
