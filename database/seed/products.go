package seed

import "github.com/shashiranjanraj/digiteria/app/models"

// Seed product IDs.
const (
	ProductIconsID   = "prd_71a4c82e9d5b30f6"
	ProductBrushesID = "prd_2d9e54b7a1c68f03"
	ProductNotionID  = "prd_e06b31f9c72d84a5"
	ProductPresetsID = "prd_8c5f20a64e91d7b3"
)

func init() {
	Register("products", seedProducts)
}

func seedProducts(doc *models.Document) {
	doc.Products = append(doc.Products,
		models.Product{
			ID:          ProductIconsID,
			CreatorID:   CreatorID,
			Title:       "Minimal UI Icons Pack",
			Description: "420 pixel-perfect icons in SVG and Figma formats.",
			Category:    "design",
			Price:       12.00,
			Status:      models.StatusApproved,
			Views:       312,
			Downloads:   1,
			SalesCount:  1,
			Rating:      5,
			ReviewCount: 1,
			CreatedAt:   date(2025, 2, 14),
			UpdatedAt:   date(2025, 5, 2),
		},
		models.Product{
			ID:          ProductBrushesID,
			CreatorID:   CreatorID,
			Title:       "Procreate Brush Bundle",
			Description: "64 texture brushes for illustration and lettering.",
			Category:    "illustration",
			Price:       24.50,
			Status:      models.StatusApproved,
			Views:       189,
			Downloads:   1,
			SalesCount:  1,
			Rating:      4,
			ReviewCount: 1,
			CreatedAt:   date(2025, 3, 3),
			UpdatedAt:   date(2025, 5, 20),
		},
		models.Product{
			ID:          ProductNotionID,
			CreatorID:   CreatorID,
			Title:       "Freelance OS — Notion Template",
			Description: "Clients, invoices and projects in one workspace.",
			Category:    "productivity",
			Price:       18.00,
			Status:      models.StatusApproved,
			Views:       97,
			CreatedAt:   date(2025, 4, 11),
			UpdatedAt:   date(2025, 4, 11),
		},
		models.Product{
			ID:          ProductPresetsID,
			CreatorID:   CreatorID,
			Title:       "Lightroom Presets Vol. 2",
			Description: "12 film-inspired color presets.",
			Category:    "photography",
			Price:       9.99,
			Status:      models.StatusPending,
			CreatedAt:   date(2025, 6, 18),
			UpdatedAt:   date(2025, 6, 18),
		},
	)
}
