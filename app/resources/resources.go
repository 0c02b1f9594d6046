// Package resources defines the API response shapes. A resource decides what
// leaves the process — most importantly, UserResource never emits the
// password hash or the raw Stripe account id.
package resources

import (
	"encoding/json"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/pkg/resource"
)

// remarshal coerces v (either the typed model or a generic map from a
// collection round-trip) into dst.
func remarshal(v interface{}, dst interface{}) {
	raw, _ := json.Marshal(v)
	json.Unmarshal(raw, dst) //nolint:errcheck
}

// UserResource is the public shape of a user profile.
type UserResource struct{ resource.Base }

func (r *UserResource) ToArray(v interface{}) resource.Map {
	var u models.User
	remarshal(v, &u)

	out := resource.Map{
		"id":             u.ID,
		"email":          u.Email,
		"name":           u.Name,
		"role":           u.Role,
		"bio":            u.Bio,
		"company":        u.Company,
		"location":       u.Location,
		"website":        u.Website,
		"twitter":        u.Twitter,
		"rating":         u.Rating,
		"total_products": u.TotalProducts,
		"created_at":     u.CreatedAt,
	}
	if u.IsCreator() {
		out["total_earnings"] = u.TotalEarnings
		out["total_sales"] = u.TotalSales
	}
	return out
}

// ProductResource is the public shape of a listing. The file payload is
// reduced to name and size — the download itself goes through the orders
// endpoint.
type ProductResource struct{ resource.Base }

func (r *ProductResource) ToArray(v interface{}) resource.Map {
	var p models.Product
	remarshal(v, &p)

	out := resource.Map{
		"id":           p.ID,
		"creator_id":   p.CreatorID,
		"title":        p.Title,
		"description":  p.Description,
		"category":     p.Category,
		"price":        p.Price,
		"status":       p.Status,
		"views":        p.Views,
		"downloads":    p.Downloads,
		"sales_count":  p.SalesCount,
		"rating":       p.Rating,
		"review_count": p.ReviewCount,
		"created_at":   p.CreatedAt,
		"updated_at":   p.UpdatedAt,
	}
	if p.File != nil {
		out["file"] = resource.Map{"name": p.File.Name, "size": p.File.Size}
	}
	return out
}
