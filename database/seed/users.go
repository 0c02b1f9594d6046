package seed

import (
	"sync"
	"time"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/pkg/auth"
)

// Seed user IDs, exported so tests and other seeders can reference them.
const (
	AdminID   = "usr_9f2c41d8a03b7e65"
	CreatorID = "usr_4e8ba17f52c9d03a"
	BuyerID   = "usr_c63d09e1b84f72a5"

	AdminEmail   = "admin@digiteria.io"
	CreatorEmail = "maya@pixelforge.studio"
	BuyerEmail   = "leo.martin@gmail.com"
)

// demoHash lazily bcrypt-hashes the shared demo password once per process.
var demoHash = sync.OnceValue(func() string {
	h, err := auth.HashPassword("digiteria")
	if err != nil {
		panic("seed: hash demo password: " + err.Error())
	}
	return h
})

func init() {
	Register("users", seedUsers)
}

// Exactly three seed users — the dashboard's activeUsers figure starts at 3.
func seedUsers(doc *models.Document) {
	hash := demoHash()

	doc.Users = append(doc.Users,
		models.User{
			ID:           AdminID,
			Email:        AdminEmail,
			Name:         "Digiteria Admin",
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			Company:      "Digiteria",
			Location:     "Remote",
			CreatedAt:    date(2025, 1, 10),
			UpdatedAt:    date(2025, 1, 10),
		},
		models.User{
			ID:           CreatorID,
			Email:        CreatorEmail,
			Name:         "Maya Chen",
			PasswordHash: hash,
			Role:         models.RoleCreator,
			Bio:          "Designer making tools for other designers.",
			Company:      "PixelForge Studio",
			Location:     "Lisbon, PT",
			Website:      "https://pixelforge.studio",
			Twitter:      "@mayamakes",

			// Rollups consistent with the seed orders and reviews below.
			TotalEarnings: 34.67,
			TotalProducts: 4,
			TotalSales:    2,
			Rating:        4.5,

			CreatedAt: date(2025, 2, 1),
			UpdatedAt: date(2025, 6, 18),
		},
		models.User{
			ID:           BuyerID,
			Email:        BuyerEmail,
			Name:         "Leo Martin",
			PasswordHash: hash,
			Role:         models.RoleUser,
			Location:     "Berlin, DE",
			CreatedAt:    date(2025, 3, 22),
			UpdatedAt:    date(2025, 3, 22),
		},
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}
