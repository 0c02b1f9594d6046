package models

import "time"

// Review is a buyer's rating of a product. Reviews are append-only — there
// is no update or delete path.
type Review struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`

	Rating             int    `json:"rating"` // 1–5
	Content            string `json:"content,omitempty"`
	IsVerifiedPurchase bool   `json:"is_verified_purchase"`
	HelpfulCount       int    `json:"helpful_count"`

	CreatedAt time.Time `json:"created_at"`
}
