package models

import "time"

// Seller application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// SellerApplication is a user's request to become a creator. Approval is the
// only path that promotes a user's role to creator; it also copies
// BusinessName and Bio onto the user profile. Applications are never deleted.
type SellerApplication struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"` // links the application to a User
	BusinessName string    `json:"business_name"`
	Category     string    `json:"category,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
