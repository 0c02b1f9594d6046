package store

import (
	"math"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/pkg/collection"
)

// Stats is the dashboard rollup. It is a pure function of the current
// document, recomputed on every call — never cached, since the document can
// change at any time through another mutation or another process.
type Stats struct {
	ActiveUsers     int     `json:"active_users"`
	ProductsSold    int     `json:"products_sold"`
	CreatorEarnings float64 `json:"creator_earnings"`
	AvgRating       float64 `json:"avg_rating"`
}

// Stats computes the aggregate projection over the current document.
func (st *Store) Stats() Stats {
	doc := st.Document()

	sold := collection.Reduce(doc.Products, 0, func(acc int, p models.Product) int {
		return acc + p.SalesCount
	})
	earnings := collection.Sum(doc.Users, func(u models.User) float64 {
		return u.TotalEarnings
	})

	avg := 0.0
	if len(doc.Products) > 0 {
		total := collection.Sum(doc.Products, func(p models.Product) float64 {
			return p.Rating
		})
		avg = math.Round(total/float64(len(doc.Products))*100) / 100
	}

	return Stats{
		ActiveUsers:     len(doc.Users),
		ProductsSold:    sold,
		CreatorEarnings: roundCents(earnings),
		AvgRating:       avg,
	}
}
