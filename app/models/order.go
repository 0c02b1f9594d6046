package models

import (
	"math"
	"time"
)

// PlatformFeeRate is the marketplace cut taken from every sale.
// This is the single source of truth for the fee — callers must use
// SplitAmount rather than computing the split themselves.
const PlatformFeeRate = 0.05

// OrderCompleted is the only order status the store ever records.
const OrderCompleted = "completed"

// SplitAmount splits a gross amount into the platform fee and the seller's
// share, rounded to cents. amount == fee + seller always holds.
func SplitAmount(amount float64) (fee, seller float64) {
	fee = math.Round(amount*PlatformFeeRate*100) / 100
	seller = math.Round((amount-fee)*100) / 100
	return fee, seller
}

// Order is the immutable record of one completed purchase.
// Invariant: Amount == PlatformFee + SellerAmount.
type Order struct {
	ID        string `json:"id"`
	BuyerID   string `json:"buyer_id"`
	SellerID  string `json:"seller_id"`
	ProductID string `json:"product_id"`

	Amount       float64 `json:"amount"`
	PlatformFee  float64 `json:"platform_fee"`
	SellerAmount float64 `json:"seller_amount"`

	// PaymentRef is the confirmation reference returned by the payment
	// provider. The store records it verbatim.
	PaymentRef string `json:"payment_ref,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
