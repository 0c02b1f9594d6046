package models

import "time"

// Product moderation statuses. New submissions start as StatusPending and
// only admin moderation moves them to approved/rejected.
const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusArchived = "archived"
)

// ProductFile is the optional uploaded payload attached to a product.
// Small payloads are stored inline (base64 Data); larger uploads go through
// pkg/storage and only keep the disk/S3 path here.
type ProductFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Data string `json:"data,omitempty"`
	Path string `json:"path,omitempty"`
}

// Product is a digital good listed by exactly one creator.
type Product struct {
	ID          string  `json:"id"`
	CreatorID   string  `json:"creator_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`

	// Engagement counters — monotonically non-decreasing except via
	// explicit admin patch.
	Views       int     `json:"views"`
	Downloads   int     `json:"downloads"`
	SalesCount  int     `json:"sales_count"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	File *ProductFile `json:"file,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
