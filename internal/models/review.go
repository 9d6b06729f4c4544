package models

import "time"

// Review is a buyer's rating of a seller.
type Review struct {
	ID         int       `db:"id" json:"id"`
	SellerID   int       `db:"seller_id" json:"seller_id"`
	ReviewerID int       `db:"reviewer_id" json:"reviewer_id"`
	Score      int       `db:"score" json:"score"`
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
