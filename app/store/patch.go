package store

import "github.com/shashiranjanraj/digiteria/app/models"

// Patches are explicit optional-field structs: a nil field means "leave
// unchanged". Updating through a typed patch makes an invalid field name a
// compile-time error instead of a silently ignored map key.

// ProductPatch merges a subset of product fields. Counter fields are only
// ever set through an explicit admin edit — normal flows must not touch
// them.
type ProductPatch struct {
	Title       *string
	Description *string
	Category    *string
	Price       *float64
	Status      *string
	Views       *int
	Downloads   *int
	SalesCount  *int
	Rating      *float64
	ReviewCount *int
	File        *models.ProductFile
}

func (p ProductPatch) apply(dst *models.Product) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Views != nil {
		dst.Views = *p.Views
	}
	if p.Downloads != nil {
		dst.Downloads = *p.Downloads
	}
	if p.SalesCount != nil {
		dst.SalesCount = *p.SalesCount
	}
	if p.Rating != nil {
		dst.Rating = *p.Rating
	}
	if p.ReviewCount != nil {
		dst.ReviewCount = *p.ReviewCount
	}
	if p.File != nil {
		f := *p.File
		dst.File = &f
	}
}

// UserPatch merges a subset of user fields.
type UserPatch struct {
	Name            *string
	Role            *string
	Bio             *string
	Company         *string
	Location        *string
	Website         *string
	Twitter         *string
	StripeAccountID *string
	PasswordHash    *string
}

func (p UserPatch) apply(dst *models.User) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Role != nil {
		dst.Role = *p.Role
	}
	if p.Bio != nil {
		dst.Bio = *p.Bio
	}
	if p.Company != nil {
		dst.Company = *p.Company
	}
	if p.Location != nil {
		dst.Location = *p.Location
	}
	if p.Website != nil {
		dst.Website = *p.Website
	}
	if p.Twitter != nil {
		dst.Twitter = *p.Twitter
	}
	if p.StripeAccountID != nil {
		dst.StripeAccountID = *p.StripeAccountID
	}
	if p.PasswordHash != nil {
		dst.PasswordHash = *p.PasswordHash
	}
}

// Ptr returns a pointer to v — a small helper for building patches inline:
//
//	store.UpdateProduct(id, store.ProductPatch{Status: store.Ptr(models.StatusApproved)})
func Ptr[T any](v T) *T { return &v }
