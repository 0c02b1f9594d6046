package models

import "time"

// User roles.
const (
	RoleUser    = "user"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// User is a marketplace account: buyer, creator, or admin.
//
// The rollup fields (TotalEarnings, TotalProducts, TotalSales, Rating) are
// denormalized — they are maintained by store mutation side effects, not
// recomputed on read.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash,omitempty"` // never exposed over the API — see resource.User
	Role         string `json:"role"`

	Bio      string `json:"bio,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	Twitter  string `json:"twitter,omitempty"`

	TotalEarnings float64 `json:"total_earnings"`
	TotalProducts int     `json:"total_products"`
	TotalSales    int     `json:"total_sales"`
	Rating        float64 `json:"rating"`

	// StripeAccountID is the payout destination, stored encrypted
	// (crypt.Encrypt) by the profile controller.
	StripeAccountID string `json:"stripe_account_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCreator reports whether the user may own products.
func (u User) IsCreator() bool { return u.Role == RoleCreator || u.Role == RoleAdmin }
