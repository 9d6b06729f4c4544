package models

import "time"

// Product is a listing put up by a seller.
type Product struct {
	ID          int       `db:"id" json:"id"`
	SellerID    int       `db:"seller_id" json:"seller_id"`
	Name        string    `db:"name" json:"name"`
	Price       int       `db:"price" json:"price"`
	Description string    `db:"description" json:"description"`
	Sold        bool      `db:"sold" json:"sold"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ProductSummary is a product enriched with favorite info for list views.
type ProductSummary struct {
	Product
	FavCount int  `db:"fav_count" json:"fav_count"`
	Faved    bool `db:"faved" json:"faved"`
}

// Favorite marks a product as liked by a user.
type Favorite struct {
	ProductID int       `db:"product_id" json:"product_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Sale records a completed purchase of a product.
type Sale struct {
	ID        int       `db:"id" json:"id"`
	ProductID int       `db:"product_id" json:"product_id"`
	SellerID  int       `db:"seller_id" json:"seller_id"`
	BuyerID   int       `db:"buyer_id" json:"buyer_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
