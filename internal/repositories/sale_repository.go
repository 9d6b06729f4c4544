package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"market-service/internal/models"
)

var (
	ErrProductSold = errors.New("product already sold")
	ErrOwnProduct  = errors.New("cannot buy own product")
)

// SaleRepository records completed purchases.
type SaleRepository interface {
	CreateSale(ctx context.Context, productID int, buyerID int) (models.Sale, error)
	ListSales(ctx context.Context, sellerID int) ([]models.Sale, error)
	ListPurchases(ctx context.Context, buyerID int) ([]models.Sale, error)
}

// SaleRepo is a sqlx implementation of SaleRepository.
type SaleRepo struct {
	db *sqlx.DB
}

// NewSaleRepo constructs a SaleRepo.
func NewSaleRepo(db *sqlx.DB) *SaleRepo {
	return &SaleRepo{db: db}
}

// CreateSale marks the product sold and records the sale. The product row is
// locked so two concurrent buyers cannot both succeed.
func (r *SaleRepo) CreateSale(ctx context.Context, productID int, buyerID int) (models.Sale, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Sale{}, err
	}
	defer tx.Rollback()

	var product models.Product
	err = tx.GetContext(ctx, &product, `SELECT id, seller_id, name, price, description, sold, created_at FROM products WHERE id=$1 FOR UPDATE`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrProductNotFound
	}
	if err != nil {
		return models.Sale{}, err
	}
	if product.SellerID == buyerID {
		return models.Sale{}, ErrOwnProduct
	}
	if product.Sold {
		return models.Sale{}, ErrProductSold
	}

	var sale models.Sale
	if err := tx.QueryRowxContext(ctx, `INSERT INTO sales (product_id, seller_id, buyer_id) VALUES ($1, $2, $3)
        RETURNING id, product_id, seller_id, buyer_id, created_at`, productID, product.SellerID, buyerID).
		StructScan(&sale); err != nil {
		return models.Sale{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE products SET sold = TRUE WHERE id=$1`, productID); err != nil {
		return models.Sale{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

// ListSales returns the seller's completed sales, newest first.
func (r *SaleRepo) ListSales(ctx context.Context, sellerID int) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.SelectContext(ctx, &sales, `SELECT id, product_id, seller_id, buyer_id, created_at FROM sales WHERE seller_id=$1 ORDER BY created_at DESC`, sellerID)
	return sales, err
}

// ListPurchases returns the buyer's purchases, newest first.
func (r *SaleRepo) ListPurchases(ctx context.Context, buyerID int) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.SelectContext(ctx, &sales, `SELECT id, product_id, seller_id, buyer_id, created_at FROM sales WHERE buyer_id=$1 ORDER BY created_at DESC`, buyerID)
	return sales, err
}
