package seed

import "github.com/shashiranjanraj/digiteria/app/models"

// Seed order and review IDs.
const (
	OrderIconsID   = "ord_f3b92c07a61e84d5"
	OrderBrushesID = "ord_5a7d18e3c9f02b64"

	ReviewIconsID   = "rev_b28e61a9f47c035d"
	ReviewBrushesID = "rev_07c4f5d2e8a1963b"

	ApplicationLeoID = "app_d91a63b5f0e7248c"
)

func init() {
	Register("orders", seedOrders)
	Register("reviews", seedReviews)
	Register("applications", seedApplications)
}

// Both orders respect the fee invariant: amount == platform_fee + seller_amount
// at the 5% rate, and Maya's rollups in users.go sum the seller amounts.
func seedOrders(doc *models.Document) {
	doc.Orders = append(doc.Orders,
		models.Order{
			ID:           OrderBrushesID,
			BuyerID:      BuyerID,
			SellerID:     CreatorID,
			ProductID:    ProductBrushesID,
			Amount:       24.50,
			PlatformFee:  1.23,
			SellerAmount: 23.27,
			PaymentRef:   "pi_3NqK8wLkdIwHu7ix0snN8bXa",
			Status:       models.OrderCompleted,
			CreatedAt:    date(2025, 5, 20),
			UpdatedAt:    date(2025, 5, 20),
		},
		models.Order{
			ID:           OrderIconsID,
			BuyerID:      BuyerID,
			SellerID:     CreatorID,
			ProductID:    ProductIconsID,
			Amount:       12.00,
			PlatformFee:  0.60,
			SellerAmount: 11.40,
			PaymentRef:   "pi_3NhT2rLkdIwHu7ix1aQm4cYe",
			Status:       models.OrderCompleted,
			CreatedAt:    date(2025, 5, 2),
			UpdatedAt:    date(2025, 5, 2),
		},
	)
}

func seedReviews(doc *models.Document) {
	doc.Reviews = append(doc.Reviews,
		models.Review{
			ID:                 ReviewBrushesID,
			ProductID:          ProductBrushesID,
			UserID:             BuyerID,
			Rating:             4,
			Content:            "Great texture variety, a few brushes overlap.",
			IsVerifiedPurchase: true,
			HelpfulCount:       3,
			CreatedAt:          date(2025, 5, 25),
		},
		models.Review{
			ID:                 ReviewIconsID,
			ProductID:          ProductIconsID,
			UserID:             BuyerID,
			Rating:             5,
			Content:            "Exactly what I needed — clean grid, tidy naming.",
			IsVerifiedPurchase: true,
			HelpfulCount:       7,
			CreatedAt:          date(2025, 5, 6),
		},
	)
}

func seedApplications(doc *models.Document) {
	doc.Applications = append(doc.Applications,
		models.SellerApplication{
			ID:           ApplicationLeoID,
			Email:        BuyerEmail,
			BusinessName: "Leo's Sound Lab",
			Category:     "audio",
			Bio:          "Field recordings and sample packs.",
			Status:       models.ApplicationPending,
			SubmittedAt:  date(2025, 6, 20),
		},
	)
}
