package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"market-service/internal/models"
)

// ReviewRepository abstracts seller review persistence.
type ReviewRepository interface {
	CreateReview(ctx context.Context, sellerID int, reviewerID int, score int, body string) (models.Review, error)
	ListReviewsForSeller(ctx context.Context, sellerID int) ([]models.Review, error)
}

// ReviewRepo is a sqlx implementation of ReviewRepository.
type ReviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepo constructs a ReviewRepo.
func NewReviewRepo(db *sqlx.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// CreateReview stores a review of a seller.
func (r *ReviewRepo) CreateReview(ctx context.Context, sellerID int, reviewerID int, score int, body string) (models.Review, error) {
	var review models.Review
	err := r.db.QueryRowxContext(ctx, `INSERT INTO reviews (seller_id, reviewer_id, score, body)
        VALUES ($1, $2, $3, $4)
        RETURNING id, seller_id, reviewer_id, score, body, created_at`, sellerID, reviewerID, score, body).
		StructScan(&review)
	return review, err
}

// ListReviewsForSeller returns reviews received by a seller, newest first.
func (r *ReviewRepo) ListReviewsForSeller(ctx context.Context, sellerID int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.SelectContext(ctx, &reviews, `SELECT id, seller_id, reviewer_id, score, body, created_at FROM reviews WHERE seller_id=$1 ORDER BY created_at DESC`, sellerID)
	return reviews, err
}
